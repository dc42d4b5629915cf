package configmanager

// LoadOptions configures how configuration is loaded.
type LoadOptions struct {
	// Silent suppresses all loading notifications when true.
	Silent bool
	// IgnoreConfigFile skips reading on-disk config files when true (flags/env/defaults only).
	IgnoreConfigFile bool
	// SkipValidation skips config validation when true.
	SkipValidation bool
	// FallbackStackName is used when no stack name was configured.
	// Commands that must target an existing stack leave it empty.
	FallbackStackName string
}

// ConfigManager provides configuration management functionality.
type ConfigManager[T any] interface {
	// Load loads the configuration with the specified options.
	// Returns the loaded config, either freshly loaded or previously cached.
	Load(opts LoadOptions) (*T, error)
}
