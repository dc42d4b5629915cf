// Package provisioner groups the engine-specific provisioners.
//
//   - pulumi: Registers a declaration as Pulumi resources
package provisioner
