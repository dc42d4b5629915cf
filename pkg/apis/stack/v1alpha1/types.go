package v1alpha1

// StackConfig holds the inputs of one declaration pass.
type StackConfig struct {
	// Name is the stack identifier used as the naming prefix of every resource.
	Name string `json:"stack" mapstructure:"stack" yaml:"stack"`
	// Region is the provider region. Empty means the provider's configured default.
	Region string `json:"region,omitempty" mapstructure:"region" yaml:"region,omitempty"`
	// BuildContext is the directory sent to the image builder.
	BuildContext string `json:"context" mapstructure:"context" yaml:"context"`
	// Dockerfile is the build-description file used by the image builder.
	Dockerfile string `json:"dockerfile" mapstructure:"dockerfile" yaml:"dockerfile"`
	// Platform optionally pins the target platform of the build (e.g. linux/amd64).
	Platform string `json:"platform,omitempty" mapstructure:"platform" yaml:"platform,omitempty"`
}
