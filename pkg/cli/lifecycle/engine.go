package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	"github.com/local-api-gateway/infra/pkg/cli/helpers"
	runtime "github.com/local-api-gateway/infra/pkg/di"
	configmanagerinterface "github.com/local-api-gateway/infra/pkg/io/config-manager"
	"github.com/local-api-gateway/infra/pkg/svc/stackmanager"
	"github.com/local-api-gateway/infra/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// ConfigLoader loads the stack configuration of a command.
type ConfigLoader = configmanagerinterface.ConfigManager[v1alpha1.StackConfig]

// EngineAction runs one engine operation.
type EngineAction func(
	ctx context.Context,
	manager stackmanager.Manager,
	cfg v1alpha1.StackConfig,
) (stackmanager.Result, error)

// EngineCommandConfig defines the configuration for an engine command.
type EngineCommandConfig struct {
	Use          string
	Short        string
	Long         string
	TitleEmoji   string
	TitleContent string
	Activity     string
	Success      string
	// BeforeAction runs after the config is resolved and before the engine starts.
	BeforeAction func(cmd *cobra.Command, cfg v1alpha1.StackConfig) error
	Action       EngineAction
}

// NewEngineCmd creates an engine command running config.Action against the configured stack.
func NewEngineCmd(
	runtimeContainer *runtime.Runtime,
	loader ConfigLoader,
	config EngineCommandConfig,
) *cobra.Command {
	return &cobra.Command{
		Use:          config.Use,
		Short:        config.Short,
		Long:         config.Long,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runtimeContainer.Invoke(func(injector runtime.Injector) error {
				return runEngineAction(cmd, injector, loader, config)
			})
		},
	}
}

// LoadStackConfig loads the config of a command that targets an existing stack.
// Build paths stay as configured: they are resolved relative to the program directory
// by the engine, never rewritten on the local machine.
func LoadStackConfig(loader ConfigLoader, silent bool) (v1alpha1.StackConfig, error) {
	cfg, err := loader.Load(configmanagerinterface.LoadOptions{Silent: silent})
	if err != nil {
		return v1alpha1.StackConfig{}, fmt.Errorf("failed to load stack config: %w", err)
	}

	return *cfg, nil
}

// NewManager resolves the logger and stack manager factory from injector
// and builds a manager streaming to the command's output and running the
// program from --workdir.
//
//nolint:ireturn // Manager abstraction is swapped in tests
func NewManager(cmd *cobra.Command, injector runtime.Injector) (stackmanager.Manager, error) {
	logger, err := runtime.ResolveLogger(injector)
	if err != nil {
		return nil, err
	}

	helpers.ConfigureLogger(cmd, logger)

	factory, err := runtime.ResolveStackManagerFactory(injector)
	if err != nil {
		return nil, err
	}

	return factory(cmd.OutOrStdout(), logger, helpers.GetWorkdir(cmd)), nil
}

func runEngineAction(
	cmd *cobra.Command,
	injector runtime.Injector,
	loader ConfigLoader,
	config EngineCommandConfig,
) error {
	out := cmd.OutOrStdout()

	cfg, err := LoadStackConfig(loader, false)
	if err != nil {
		return err
	}

	manager, err := NewManager(cmd, injector)
	if err != nil {
		return err
	}

	notify.Titlef(out, config.TitleEmoji, "%s", config.TitleContent)

	if config.BeforeAction != nil {
		err = config.BeforeAction(cmd, cfg)
		if err != nil {
			return err
		}
	}

	notify.Activityf(out, "%s stack '%s'", config.Activity, cfg.Name)

	started := time.Now()

	result, err := config.Action(cmd.Context(), manager, cfg)
	if err != nil {
		if errors.Is(err, stackmanager.ErrConcurrentUpdate) {
			notify.Warningf(out, "stack '%s' is locked by another update, retry once it finishes", cfg.Name)
		}

		return fmt.Errorf("failed to %s stack: %w", config.Activity, err)
	}

	WriteResult(out, result)
	notify.SuccessWithElapsedf(out, time.Since(started), "%s", config.Success)

	return nil
}

// WriteResult prints change counts and outputs in lexical order.
func WriteResult(out io.Writer, result stackmanager.Result) {
	for _, op := range stackmanager.SortedKeys(result.Changes) {
		notify.Infof(out, "%s: %d", op, result.Changes[op])
	}

	for _, key := range stackmanager.SortedKeys(result.Outputs) {
		notify.Infof(out, "%s = %s", key, result.Outputs[key])
	}
}
