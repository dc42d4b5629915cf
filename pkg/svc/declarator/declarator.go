package declarator

import (
	"fmt"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
)

// Declare builds the declaration of every resource of a stack.
//
// The result depends only on cfg, so declaring an unchanged stack twice yields equal
// declarations and byte-identical policy documents; re-applying it is a no-op for the engine.
func Declare(cfg v1alpha1.StackConfig) (*Declaration, error) {
	cfg = cfg.WithDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid stack config: %w", err)
	}

	accessDocument, err := NewAccessPolicyDocument().Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to declare access policy: %w", err)
	}

	lifecycleDocument, err := NewLifecyclePolicyDocument().Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to declare lifecycle policy: %w", err)
	}

	stack := cfg.Name

	registry := Registry{
		ResourceName:       RepositoryName(stack),
		Name:               RepositoryName(stack),
		ImageTagMutability: TagMutable,
		Protect:            true,
	}

	accessPolicy := AccessPolicy{
		ResourceName: RepositoryPolicyResourceName(stack),
		Registry:     registry.ResourceName,
		Document:     accessDocument,
	}

	lifecyclePolicy := LifecyclePolicy{
		ResourceName: LifecyclePolicyResourceName(stack),
		Registry:     registry.ResourceName,
		Document:     lifecycleDocument,
	}

	image := Image{
		ResourceName: ImageResourceName(stack),
		Registry:     registry.ResourceName,
		Context:      cfg.BuildContext,
		Dockerfile:   cfg.Dockerfile,
		Platform:     cfg.Platform,
	}

	output := Output{
		Key:   ImageOutputKey(stack),
		Image: image.ResourceName,
	}

	graph, err := NewGraph(
		[]Node{
			{ID: registry.ResourceName, Kind: KindRepository},
			{ID: accessPolicy.ResourceName, Kind: KindRepositoryPolicy},
			{ID: lifecyclePolicy.ResourceName, Kind: KindLifecyclePolicy},
			{ID: image.ResourceName, Kind: KindImage},
			{ID: output.Key, Kind: KindOutput},
		},
		[]Edge{
			{From: accessPolicy.ResourceName, To: accessPolicy.Registry},
			{From: lifecyclePolicy.ResourceName, To: lifecyclePolicy.Registry},
			{From: image.ResourceName, To: image.Registry},
			{From: output.Key, To: output.Image},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build resource graph: %w", err)
	}

	return &Declaration{
		Stack:           stack,
		Registry:        registry,
		AccessPolicy:    accessPolicy,
		LifecyclePolicy: lifecyclePolicy,
		Image:           image,
		Output:          output,
		Graph:           graph,
	}, nil
}
