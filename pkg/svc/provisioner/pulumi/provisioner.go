package pulumiprovisioner

import (
	"fmt"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	"github.com/local-api-gateway/infra/pkg/svc/declarator"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ecr"
	awsxecr "github.com/pulumi/pulumi-awsx/sdk/v2/go/awsx/ecr"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// Outputs are the values a registered stack produces once the engine has applied it.
type Outputs struct {
	RepositoryName pulumi.StringOutput
	RepositoryURL  pulumi.StringOutput
	ImageURI       pulumi.StringOutput
}

// Program returns the Pulumi program declaring and registering the stack described by cfg.
func Program(cfg v1alpha1.StackConfig) pulumi.RunFunc {
	return func(ctx *pulumi.Context) error {
		decl, err := declarator.Declare(cfg)
		if err != nil {
			return fmt.Errorf("failed to declare stack %q: %w", cfg.Name, err)
		}

		_, err = Register(ctx, decl)

		return err
	}
}

// Register creates the Pulumi resources of decl in its topological order and exports
// the built image address.
func Register(ctx *pulumi.Context, decl *declarator.Declaration) (*Outputs, error) {
	reg := &registrar{
		ctx:          ctx,
		decl:         decl,
		repositories: make(map[string]*ecr.Repository),
		images:       make(map[string]*awsxecr.Image),
	}

	for _, id := range decl.Graph.TopoOrder {
		node, ok := decl.Graph.Node(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedReference, id)
		}

		err := reg.register(node)
		if err != nil {
			return nil, err
		}
	}

	return reg.outputs()
}

type registrar struct {
	ctx          *pulumi.Context
	decl         *declarator.Declaration
	repositories map[string]*ecr.Repository
	images       map[string]*awsxecr.Image
}

func (r *registrar) register(node declarator.Node) error {
	switch node.Kind {
	case declarator.KindRepository:
		return r.registerRepository(r.decl.Registry)
	case declarator.KindRepositoryPolicy:
		return r.registerRepositoryPolicy(r.decl.AccessPolicy)
	case declarator.KindLifecyclePolicy:
		return r.registerLifecyclePolicy(r.decl.LifecyclePolicy)
	case declarator.KindImage:
		return r.registerImage(r.decl.Image)
	case declarator.KindOutput:
		return r.export(r.decl.Output)
	default:
		return fmt.Errorf("%w: %s (%s)", ErrUnsupportedKind, node.Kind, node.ID)
	}
}

func (r *registrar) registerRepository(spec declarator.Registry) error {
	repository, err := ecr.NewRepository(r.ctx, spec.ResourceName, &ecr.RepositoryArgs{
		Name:               pulumi.String(spec.Name),
		ImageTagMutability: pulumi.String(string(spec.ImageTagMutability)),
	}, pulumi.Protect(spec.Protect))
	if err != nil {
		return fmt.Errorf("failed to declare repository %s: %w", spec.Name, err)
	}

	r.repositories[spec.ResourceName] = repository

	return nil
}

func (r *registrar) registerRepositoryPolicy(spec declarator.AccessPolicy) error {
	repository, err := r.repository(spec.Registry)
	if err != nil {
		return err
	}

	_, err = ecr.NewRepositoryPolicy(r.ctx, spec.ResourceName, &ecr.RepositoryPolicyArgs{
		Repository: repository.Name,
		Policy:     pulumi.String(spec.Document),
	})
	if err != nil {
		return fmt.Errorf("failed to declare repository policy %s: %w", spec.ResourceName, err)
	}

	return nil
}

func (r *registrar) registerLifecyclePolicy(spec declarator.LifecyclePolicy) error {
	repository, err := r.repository(spec.Registry)
	if err != nil {
		return err
	}

	_, err = ecr.NewLifecyclePolicy(r.ctx, spec.ResourceName, &ecr.LifecyclePolicyArgs{
		Repository: repository.Name,
		Policy:     pulumi.String(spec.Document),
	})
	if err != nil {
		return fmt.Errorf("failed to declare lifecycle policy %s: %w", spec.ResourceName, err)
	}

	return nil
}

func (r *registrar) registerImage(spec declarator.Image) error {
	repository, err := r.repository(spec.Registry)
	if err != nil {
		return err
	}

	args := &awsxecr.ImageArgs{
		RepositoryUrl: repository.RepositoryUrl,
		Context:       pulumi.StringPtr(spec.Context),
		Dockerfile:    pulumi.StringPtr(spec.Dockerfile),
	}
	if spec.Platform != "" {
		args.Platform = pulumi.StringPtr(spec.Platform)
	}

	image, err := awsxecr.NewImage(r.ctx, spec.ResourceName, args)
	if err != nil {
		return fmt.Errorf("failed to declare image %s: %w", spec.ResourceName, err)
	}

	r.images[spec.ResourceName] = image

	return nil
}

func (r *registrar) export(spec declarator.Output) error {
	image, ok := r.images[spec.Image]
	if !ok {
		return fmt.Errorf("%w: output %s needs image %s", ErrUnresolvedReference, spec.Key, spec.Image)
	}

	r.ctx.Export(spec.Key, image.ImageUri)

	return nil
}

func (r *registrar) repository(resourceName string) (*ecr.Repository, error) {
	repository, ok := r.repositories[resourceName]
	if !ok {
		return nil, fmt.Errorf("%w: repository %s", ErrUnresolvedReference, resourceName)
	}

	return repository, nil
}

func (r *registrar) outputs() (*Outputs, error) {
	repository, err := r.repository(r.decl.Registry.ResourceName)
	if err != nil {
		return nil, err
	}

	image, ok := r.images[r.decl.Image.ResourceName]
	if !ok {
		return nil, fmt.Errorf("%w: image %s", ErrUnresolvedReference, r.decl.Image.ResourceName)
	}

	return &Outputs{
		RepositoryName: repository.Name,
		RepositoryURL:  repository.RepositoryUrl,
		ImageURI:       image.ImageUri,
	}, nil
}
