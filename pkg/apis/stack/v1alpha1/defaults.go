package v1alpha1

const (
	// DefaultBuildContext is the build context, one level above the declaration.
	DefaultBuildContext = "../"
	// DefaultDockerfile is the build-description file next to the build context.
	DefaultDockerfile = "../Dockerfile"
	// DefaultStackName is used by offline commands when no stack is selected.
	DefaultStackName = "dev"
)
