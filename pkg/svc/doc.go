// Package svc provides the service layer of the registry stack.
//
// Subpackages:
//   - declarator: Resource names, policy documents and the dependency graph of a stack
//   - provisioner/pulumi: Registration of a declaration with the Pulumi engine
//   - stackmanager: Preview, update, destroy and outputs through the Automation API
//   - buildcontext: Preflight inspection of the image build context
//   - imageref: Parsing of exported image addresses
package svc
