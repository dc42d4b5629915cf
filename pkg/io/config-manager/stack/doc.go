// Package configmanager loads v1alpha1.StackConfig from defaults, a YAML config file,
// GATEWAYINFRA_* environment variables and command-line flags, in that order of priority.
//
// This package shares the "configmanager" package name with its parent directory
// (pkg/io/config-manager). Import with an alias for clarity:
//
//	import stackconfigmanager "github.com/local-api-gateway/infra/pkg/io/config-manager/stack"
package configmanager
