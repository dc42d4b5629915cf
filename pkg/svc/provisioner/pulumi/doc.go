// Package pulumiprovisioner registers a stack declaration with the Pulumi engine.
//
// Each declared resource becomes one Pulumi resource. References between declarations
// are passed as Pulumi outputs, so the engine derives the same dependency edges the
// declaration graph records and materializes the registry before anything that uses it.
package pulumiprovisioner
