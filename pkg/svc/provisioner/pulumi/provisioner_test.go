package pulumiprovisioner_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	"github.com/local-api-gateway/infra/pkg/svc/declarator"
	pulumiprovisioner "github.com/local-api-gateway/infra/pkg/svc/provisioner/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/common/resource"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRegistryHost = "123456789012.dkr.ecr.eu-west-1.amazonaws.com"

type registeredResource struct {
	typeToken string
	name      string
	inputs    resource.PropertyMap
	protect   bool
}

// recordingMocks answers resource registrations the way the provider would and
// remembers every registration in order.
type recordingMocks struct {
	mu        sync.Mutex
	resources []registeredResource
}

func (m *recordingMocks) NewResource(args pulumi.MockResourceArgs) (string, resource.PropertyMap, error) {
	outputs := args.Inputs.Copy()

	switch args.TypeToken {
	case string(declarator.KindRepository):
		name := args.Inputs["name"].StringValue()
		outputs["repositoryUrl"] = resource.NewStringProperty(testRegistryHost + "/" + name)
	case string(declarator.KindImage):
		stack := strings.TrimSuffix(args.Name, "-local-api-gateway-image")
		outputs["imageUri"] = resource.NewStringProperty(
			testRegistryHost + "/" + declarator.RepositoryName(stack) + ":latest",
		)
	}

	m.mu.Lock()
	m.resources = append(m.resources, registeredResource{
		typeToken: args.TypeToken,
		name:      args.Name,
		inputs:    args.Inputs,
		protect:   args.RegisterRPC.GetProtect(),
	})
	m.mu.Unlock()

	return args.Name + "_id", outputs, nil
}

func (m *recordingMocks) Call(_ pulumi.MockCallArgs) (resource.PropertyMap, error) {
	return resource.PropertyMap{}, nil
}

func (m *recordingMocks) byType(typeToken declarator.Kind) []registeredResource {
	m.mu.Lock()
	defer m.mu.Unlock()

	var found []registeredResource

	for _, res := range m.resources {
		if res.typeToken == string(typeToken) {
			found = append(found, res)
		}
	}

	return found
}

func registerStack(t *testing.T, cfg v1alpha1.StackConfig) (*recordingMocks, string, string) {
	t.Helper()

	decl, err := declarator.Declare(cfg)
	require.NoError(t, err)

	mocks := &recordingMocks{}

	var repositoryName, imageURI string

	err = pulumi.RunErr(func(ctx *pulumi.Context) error {
		outputs, registerErr := pulumiprovisioner.Register(ctx, decl)
		if registerErr != nil {
			return registerErr
		}

		var wg sync.WaitGroup

		wg.Add(1)

		pulumi.All(outputs.RepositoryName, outputs.ImageURI).ApplyT(func(all []interface{}) error {
			repositoryName, _ = all[0].(string)
			imageURI, _ = all[1].(string)

			wg.Done()

			return nil
		})

		wg.Wait()

		return nil
	}, pulumi.WithMocks("local-api-gateway", cfg.Name, mocks))
	require.NoError(t, err)

	return mocks, repositoryName, imageURI
}

func TestRegisterDeclaresEveryResource(t *testing.T) {
	t.Parallel()

	mocks, _, _ := registerStack(t, v1alpha1.NewStackConfig("dev"))

	for _, kind := range []declarator.Kind{
		declarator.KindRepository,
		declarator.KindRepositoryPolicy,
		declarator.KindLifecyclePolicy,
		declarator.KindImage,
	} {
		assert.Len(t, mocks.byType(kind), 1, "expected exactly one %s", kind)
	}
}

func TestRegisterRepository(t *testing.T) {
	t.Parallel()

	mocks, repositoryName, _ := registerStack(t, v1alpha1.NewStackConfig("prod"))

	repositories := mocks.byType(declarator.KindRepository)
	require.Len(t, repositories, 1)

	repository := repositories[0]
	assert.Equal(t, "prod-local-api-gateway-repository", repository.name)
	assert.Equal(t, "prod-local-api-gateway-repository", repository.inputs["name"].StringValue())
	assert.Equal(t, "MUTABLE", repository.inputs["imageTagMutability"].StringValue())
	assert.True(t, repository.protect)
	assert.Equal(t, "prod-local-api-gateway-repository", repositoryName)
}

func TestRegisterPoliciesTargetTheRepository(t *testing.T) {
	t.Parallel()

	mocks, _, _ := registerStack(t, v1alpha1.NewStackConfig("dev"))

	accessDocument, err := declarator.NewAccessPolicyDocument().Encode()
	require.NoError(t, err)

	lifecycleDocument, err := declarator.NewLifecyclePolicyDocument().Encode()
	require.NoError(t, err)

	policies := mocks.byType(declarator.KindRepositoryPolicy)
	require.Len(t, policies, 1)
	assert.Equal(t, "dev-local-api-gateway-repository-policy", policies[0].name)
	assert.Equal(t, "dev-local-api-gateway-repository", policies[0].inputs["repository"].StringValue())
	assert.Equal(t, accessDocument, policies[0].inputs["policy"].StringValue())
	assert.False(t, policies[0].protect)

	lifecycles := mocks.byType(declarator.KindLifecyclePolicy)
	require.Len(t, lifecycles, 1)
	assert.Equal(t, "dev-local_api_gateway_repository-repo-lifecycle-policy", lifecycles[0].name)
	assert.Equal(t, "dev-local-api-gateway-repository", lifecycles[0].inputs["repository"].StringValue())
	assert.Equal(t, lifecycleDocument, lifecycles[0].inputs["policy"].StringValue())
}

func TestRegisterImage(t *testing.T) {
	t.Parallel()

	cfg := v1alpha1.NewStackConfig("dev")
	cfg.Platform = "linux/amd64"

	mocks, _, imageURI := registerStack(t, cfg)

	images := mocks.byType(declarator.KindImage)
	require.Len(t, images, 1)
	assert.Equal(t, "dev-local-api-gateway-image", images[0].name)
	assert.Equal(t, "../", images[0].inputs["context"].StringValue())
	assert.Equal(t, "../Dockerfile", images[0].inputs["dockerfile"].StringValue())
	assert.Equal(t, "linux/amd64", images[0].inputs["platform"].StringValue())

	assert.NotEmpty(t, imageURI)
	assert.Equal(t, testRegistryHost+"/dev-local-api-gateway-repository:latest", imageURI)
}

func TestProgramRejectsInvalidStack(t *testing.T) {
	t.Parallel()

	err := pulumi.RunErr(
		pulumiprovisioner.Program(v1alpha1.NewStackConfig("Not Valid")),
		pulumi.WithMocks("local-api-gateway", "dev", &recordingMocks{}),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stack name is invalid")
}

func TestProgramRegistersStack(t *testing.T) {
	t.Parallel()

	mocks := &recordingMocks{}

	err := pulumi.RunErr(
		pulumiprovisioner.Program(v1alpha1.NewStackConfig("dev")),
		pulumi.WithMocks("local-api-gateway", "dev", mocks),
	)
	require.NoError(t, err)

	assert.Len(t, mocks.byType(declarator.KindImage), 1)
}
