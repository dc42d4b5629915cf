package stack_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	"github.com/local-api-gateway/infra/pkg/cli/cmd"
	runtime "github.com/local-api-gateway/infra/pkg/di"
	"github.com/local-api-gateway/infra/pkg/svc/stackmanager"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeManager struct {
	mu      sync.Mutex
	workDir string
	calls   []string
	configs []v1alpha1.StackConfig
	result  stackmanager.Result
	outputs map[string]string
	err     error
}

func (f *fakeManager) record(call string, cfg v1alpha1.StackConfig) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call)
	f.configs = append(f.configs, cfg)
}

func (f *fakeManager) Preview(_ context.Context, cfg v1alpha1.StackConfig) (stackmanager.Result, error) {
	f.record("preview", cfg)

	return f.result, f.err
}

func (f *fakeManager) Up(_ context.Context, cfg v1alpha1.StackConfig) (stackmanager.Result, error) {
	f.record("up", cfg)

	return f.result, f.err
}

func (f *fakeManager) Destroy(_ context.Context, cfg v1alpha1.StackConfig) (stackmanager.Result, error) {
	f.record("destroy", cfg)

	return f.result, f.err
}

func (f *fakeManager) Outputs(_ context.Context, cfg v1alpha1.StackConfig) (map[string]string, error) {
	f.record("outputs", cfg)

	return f.outputs, f.err
}

// executeRoot runs the root command with args against manager and returns its output.
func executeRoot(t *testing.T, manager *fakeManager, args ...string) (string, error) {
	t.Helper()

	runtimeContainer := runtime.New(
		runtime.ProvideLogger,
		runtime.ProvideStackManagerFactory(
			func(_ io.Writer, _ logrus.FieldLogger, workDir string) stackmanager.Manager {
				manager.mu.Lock()
				defer manager.mu.Unlock()

				manager.workDir = workDir

				return manager
			},
		),
	)

	var out bytes.Buffer

	root := cmd.NewRootCmdWithRuntime(runtimeContainer, "test", "test", "test")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

// newBuildContext creates a context directory holding a Dockerfile and returns both paths.
func newBuildContext(t *testing.T, files map[string]string) (string, string) {
	t.Helper()

	contextDir := t.TempDir()
	dockerfile := filepath.Join(contextDir, "Dockerfile")

	require.NoError(t, os.WriteFile(dockerfile, []byte("FROM scratch\n"), 0o600))

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(contextDir, name), []byte(content), 0o600))
	}

	return contextDir, dockerfile
}
