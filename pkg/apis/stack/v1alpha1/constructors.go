package v1alpha1

// NewStackConfig creates a StackConfig for the named stack with default build inputs.
func NewStackConfig(name string) StackConfig {
	return StackConfig{
		Name:         name,
		Region:       "",
		BuildContext: DefaultBuildContext,
		Dockerfile:   DefaultDockerfile,
		Platform:     "",
	}
}

// WithDefaults returns a copy of the config with empty build inputs replaced by defaults.
func (c StackConfig) WithDefaults() StackConfig {
	if c.BuildContext == "" {
		c.BuildContext = DefaultBuildContext
	}

	if c.Dockerfile == "" {
		c.Dockerfile = DefaultDockerfile
	}

	return c
}
