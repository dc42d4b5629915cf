// Package stackmanager drives preview, update, destroy and output queries of a stack
// through the Pulumi Automation API, using the program from pulumiprovisioner inline.
package stackmanager
