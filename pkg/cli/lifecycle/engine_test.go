package lifecycle_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	"github.com/local-api-gateway/infra/pkg/cli/helpers"
	"github.com/local-api-gateway/infra/pkg/cli/lifecycle"
	runtime "github.com/local-api-gateway/infra/pkg/di"
	stackconfigmanager "github.com/local-api-gateway/infra/pkg/io/config-manager/stack"
	"github.com/local-api-gateway/infra/pkg/svc/stackmanager"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBeforeAction = errors.New("before action failed")

func TestWriteResultSortsChangesAndOutputs(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	lifecycle.WriteResult(&out, stackmanager.Result{
		Changes: map[string]int{"update": 1, "create": 3},
		Outputs: map[string]string{"b": "2", "a": "1"},
	})

	assert.Equal(t, "ℹ create: 3\nℹ update: 1\nℹ a = 1\nℹ b = 2\n", out.String())
}

func TestNewManagerResolvesFactory(t *testing.T) {
	t.Parallel()

	var (
		gotLogger  logrus.FieldLogger
		gotWorkDir string
	)

	runtimeContainer := runtime.New(
		runtime.ProvideLogger,
		runtime.ProvideStackManagerFactory(func(_ io.Writer, logger logrus.FieldLogger, workDir string) stackmanager.Manager {
			gotLogger = logger
			gotWorkDir = workDir

			return nil
		}),
	)

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String(helpers.WorkdirFlagName, helpers.DefaultWorkdir, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--workdir", "deploy/infra"}))

	err := runtimeContainer.Invoke(func(injector runtime.Injector) error {
		_, err := lifecycle.NewManager(cmd, injector)

		return err
	})

	require.NoError(t, err)
	assert.NotNil(t, gotLogger)
	assert.Equal(t, "deploy/infra", gotWorkDir)
}

func TestNewManagerFailsWithoutFactory(t *testing.T) {
	t.Parallel()

	err := runtime.New(runtime.ProvideLogger).Invoke(func(injector runtime.Injector) error {
		_, err := lifecycle.NewManager(&cobra.Command{Use: "test"}, injector)

		return err
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve stack manager factory dependency")
}

func TestEngineCmdStopsOnBeforeActionError(t *testing.T) {
	t.Parallel()

	var actionCalled bool

	runtimeContainer := runtime.New(
		runtime.ProvideLogger,
		runtime.ProvideStackManagerFactory(func(io.Writer, logrus.FieldLogger, string) stackmanager.Manager {
			return nil
		}),
	)

	root := &cobra.Command{Use: "root"}
	loader := stackconfigmanager.NewCommandConfigManager(root)

	root.AddCommand(lifecycle.NewEngineCmd(runtimeContainer, loader, lifecycle.EngineCommandConfig{
		Use:          "refresh",
		TitleEmoji:   "🧪",
		TitleContent: "Refresh...",
		Activity:     "refresh",
		Success:      "refreshed",
		BeforeAction: func(*cobra.Command, v1alpha1.StackConfig) error { return errBeforeAction },
		Action: func(
			context.Context,
			stackmanager.Manager,
			v1alpha1.StackConfig,
		) (stackmanager.Result, error) {
			actionCalled = true

			return stackmanager.Result{}, nil
		},
	}))

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"refresh", "--stack", "dev"})

	err := root.Execute()

	require.ErrorIs(t, err, errBeforeAction)
	assert.False(t, actionCalled)
	assert.Contains(t, out.String(), "Refresh...")
}
