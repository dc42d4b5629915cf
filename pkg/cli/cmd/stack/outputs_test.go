package stack_test

import (
	"testing"

	"github.com/local-api-gateway/infra/pkg/cli/cmd/stack"
	"github.com/local-api-gateway/infra/pkg/svc/stackmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const imageURI = "123456789012.dkr.ecr.eu-west-1.amazonaws.com/dev-local-api-gateway-repository:latest"

func TestOutputsPrintsParsedImageName(t *testing.T) {
	t.Parallel()

	manager := &fakeManager{
		outputs: map[string]string{"dev-local-api-gateway-image-name": imageURI},
	}

	out, err := executeRoot(t, manager, "outputs", "-s", "dev", "--workdir", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"outputs"}, manager.calls)
	assert.Contains(t, out, "dev-local-api-gateway-image-name = "+imageURI)
	assert.Contains(t, out, "registry: 123456789012.dkr.ecr.eu-west-1.amazonaws.com")
	assert.Contains(t, out, "repository: dev-local-api-gateway-repository")
	assert.Contains(t, out, "tag: latest")
}

func TestOutputsRaw(t *testing.T) {
	t.Parallel()

	manager := &fakeManager{
		outputs: map[string]string{"dev-local-api-gateway-image-name": imageURI},
	}

	out, err := executeRoot(t, manager, "outputs", "-s", "dev", "--workdir", t.TempDir(), "--raw")
	require.NoError(t, err)

	assert.Equal(t, imageURI+"\n", out)
}

func TestOutputsMissingImage(t *testing.T) {
	t.Parallel()

	manager := &fakeManager{outputs: map[string]string{}}

	_, err := executeRoot(t, manager, "outputs", "-s", "dev", "--workdir", t.TempDir())

	require.ErrorIs(t, err, stack.ErrImageOutputMissing)
}

func TestOutputsStackNotFound(t *testing.T) {
	t.Parallel()

	manager := &fakeManager{err: stackmanager.ErrStackNotFound}

	_, err := executeRoot(t, manager, "outputs", "-s", "dev", "--workdir", t.TempDir())

	require.ErrorIs(t, err, stackmanager.ErrStackNotFound)
}
