package stack_test

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	"github.com/local-api-gateway/infra/pkg/svc/buildcontext"
	"github.com/local-api-gateway/infra/pkg/svc/declarator"
	"github.com/local-api-gateway/infra/pkg/svc/stackmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errEngineFailed = errors.New("engine failed")

func TestPreviewKeepsDeclaredBuildPaths(t *testing.T) {
	t.Parallel()

	workdir := t.TempDir()
	manager := &fakeManager{
		result: stackmanager.Result{Changes: map[string]int{"create": 4}},
	}

	out, err := executeRoot(t, manager, "preview", "--stack", "dev", "--workdir", workdir)
	require.NoError(t, err)

	require.Equal(t, []string{"preview"}, manager.calls)
	assert.Equal(t, workdir, manager.workDir)

	cfg := manager.configs[0]
	assert.Equal(t, "dev", cfg.Name)
	assert.Equal(t, "../", cfg.BuildContext)
	assert.Equal(t, "../Dockerfile", cfg.Dockerfile)

	assert.Contains(t, out, "preview stack 'dev'")
	assert.Contains(t, out, "create: 4")
	assert.Contains(t, out, "preview complete")
}

func TestEngineDeclarationMatchesProgramDeclaration(t *testing.T) {
	t.Parallel()

	want, err := declarator.Declare(v1alpha1.NewStackConfig("prod"))
	require.NoError(t, err)

	for _, workdir := range []string{
		filepath.Join(t.TempDir(), "gw", "infra"),
		filepath.Join(t.TempDir(), "build", "infra"),
	} {
		manager := &fakeManager{}

		_, err := executeRoot(t, manager, "up", "--stack", "prod", "--workdir", workdir, "--skip-preflight")
		require.NoError(t, err)
		require.Len(t, manager.configs, 1)

		got, err := declarator.Declare(manager.configs[0])
		require.NoError(t, err)
		assert.Equal(t, want, got, workdir)
	}
}

func TestEngineCommandsRequireStack(t *testing.T) {
	t.Parallel()

	for _, command := range []string{"preview", "up", "destroy", "outputs"} {
		manager := &fakeManager{}

		_, err := executeRoot(t, manager, command, "--workdir", t.TempDir())

		require.Error(t, err, command)
		assert.Empty(t, manager.calls, command)
	}
}

func TestUpRunsPreflightFirst(t *testing.T) {
	t.Parallel()

	contextDir, dockerfile := newBuildContext(t, map[string]string{"main.go": "package main\n"})
	manager := &fakeManager{
		result: stackmanager.Result{
			Changes: map[string]int{"create": 4},
			Outputs: map[string]string{"dev-local-api-gateway-image-name": "example/repo:latest"},
		},
	}

	out, err := executeRoot(t, manager,
		"up", "-s", "dev", "--context", contextDir, "--dockerfile", dockerfile, "--platform", "linux/amd64")
	require.NoError(t, err)

	require.Equal(t, []string{"up"}, manager.calls)
	assert.Equal(t, contextDir, manager.configs[0].BuildContext)
	assert.Equal(t, "linux/amd64", manager.configs[0].Platform)

	assert.Contains(t, out, "build context ready: 2 files")
	assert.Contains(t, out, "dev-local-api-gateway-image-name = example/repo:latest")
	assert.Contains(t, out, "stack updated")
}

func TestUpStopsWhenPreflightFails(t *testing.T) {
	t.Parallel()

	contextDir := t.TempDir()
	manager := &fakeManager{}

	_, err := executeRoot(t, manager,
		"up", "-s", "dev", "--context", contextDir, "--dockerfile", filepath.Join(contextDir, "Dockerfile"))

	require.ErrorIs(t, err, buildcontext.ErrDockerfileNotFound)
	assert.Empty(t, manager.calls)
}

func TestUpSkipPreflight(t *testing.T) {
	t.Parallel()

	manager := &fakeManager{}

	out, err := executeRoot(t, manager, "up", "-s", "dev", "--workdir", t.TempDir(), "--skip-preflight")
	require.NoError(t, err)

	assert.Equal(t, []string{"up"}, manager.calls)
	assert.NotContains(t, out, "inspecting build context")
}

func TestDestroyWrapsEngineErrors(t *testing.T) {
	t.Parallel()

	manager := &fakeManager{err: errEngineFailed}

	_, err := executeRoot(t, manager, "destroy", "-s", "dev", "--workdir", t.TempDir())

	require.ErrorIs(t, err, errEngineFailed)
	assert.Contains(t, err.Error(), "failed to destroy stack")
	assert.Equal(t, []string{"destroy"}, manager.calls)
}

func TestConcurrentUpdateWarns(t *testing.T) {
	t.Parallel()

	manager := &fakeManager{err: fmt.Errorf("%w: dev", stackmanager.ErrConcurrentUpdate)}

	out, err := executeRoot(t, manager, "preview", "-s", "dev", "--workdir", t.TempDir())

	require.ErrorIs(t, err, stackmanager.ErrConcurrentUpdate)
	assert.Contains(t, out, "locked by another update")
}
