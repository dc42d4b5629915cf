package configmanager

import (
	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
)

// FieldSelector defines a config field and the flag exposing it.
type FieldSelector struct {
	Key          string                              // Viper key, flag name and mapstructure tag
	Shorthand    string                              // Optional one-letter flag alias
	Selector     func(*v1alpha1.StackConfig) *string // Returns a pointer to the field
	Description  string                              // Human-readable description for CLI flags
	DefaultValue string                              // Default value for the field
}

// StackFieldSelector selects the stack name.
func StackFieldSelector() FieldSelector {
	return FieldSelector{
		Key:         "stack",
		Shorthand:   "s",
		Selector:    func(c *v1alpha1.StackConfig) *string { return &c.Name },
		Description: "Stack name used as the prefix of every resource",
	}
}

// RegionFieldSelector selects the provider region.
func RegionFieldSelector() FieldSelector {
	return FieldSelector{
		Key:         "region",
		Selector:    func(c *v1alpha1.StackConfig) *string { return &c.Region },
		Description: "AWS region (defaults to the provider configuration)",
	}
}

// BuildContextFieldSelector selects the image build context.
func BuildContextFieldSelector() FieldSelector {
	return FieldSelector{
		Key:          "context",
		Selector:     func(c *v1alpha1.StackConfig) *string { return &c.BuildContext },
		Description:  "Image build context, relative to the program directory",
		DefaultValue: v1alpha1.DefaultBuildContext,
	}
}

// DockerfileFieldSelector selects the Dockerfile path.
func DockerfileFieldSelector() FieldSelector {
	return FieldSelector{
		Key:          "dockerfile",
		Selector:     func(c *v1alpha1.StackConfig) *string { return &c.Dockerfile },
		Description:  "Dockerfile path, relative to the program directory",
		DefaultValue: v1alpha1.DefaultDockerfile,
	}
}

// PlatformFieldSelector selects the target build platform.
func PlatformFieldSelector() FieldSelector {
	return FieldSelector{
		Key:         "platform",
		Selector:    func(c *v1alpha1.StackConfig) *string { return &c.Platform },
		Description: "Target platform of the image build (e.g. linux/amd64)",
	}
}

// DefaultFieldSelectors returns the selectors for every StackConfig field.
func DefaultFieldSelectors() []FieldSelector {
	return []FieldSelector{
		StackFieldSelector(),
		RegionFieldSelector(),
		BuildContextFieldSelector(),
		DockerfileFieldSelector(),
		PlatformFieldSelector(),
	}
}
