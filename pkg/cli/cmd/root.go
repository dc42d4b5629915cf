package cmd

import (
	"fmt"

	"github.com/local-api-gateway/infra/pkg/cli/cmd/stack"
	"github.com/local-api-gateway/infra/pkg/cli/helpers"
	"github.com/local-api-gateway/infra/pkg/cli/ui/errorhandler"
	runtime "github.com/local-api-gateway/infra/pkg/di"
	stackconfigmanager "github.com/local-api-gateway/infra/pkg/io/config-manager/stack"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	return NewRootCmdWithRuntime(runtime.NewRuntime(), version, commit, date)
}

// NewRootCmdWithRuntime creates the root command resolving dependencies from runtimeContainer.
func NewRootCmdWithRuntime(runtimeContainer *runtime.Runtime, version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gatewayinfra",
		Short: "Declare and apply the local API gateway registry stack",
		Long: "gatewayinfra declares a container registry, its access and lifecycle policies " +
			"and the local API gateway image, and applies them per stack through the Pulumi engine.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cfgManager := stackconfigmanager.NewCommandConfigManager(cmd)

	cmd.PersistentFlags().Bool(helpers.VerboseFlagName, false, "Log engine events at debug level")
	cmd.PersistentFlags().String(
		helpers.WorkdirFlagName,
		helpers.DefaultWorkdir,
		"Program directory; relative build paths resolve against it and the engine runs from its Pulumi project",
	)

	cmd.AddCommand(stack.NewRenderCmd(cfgManager))
	cmd.AddCommand(stack.NewPreflightCmd(cfgManager))
	cmd.AddCommand(stack.NewPreviewCmd(runtimeContainer, cfgManager))
	cmd.AddCommand(stack.NewUpCmd(runtimeContainer, cfgManager))
	cmd.AddCommand(stack.NewDestroyCmd(runtimeContainer, cfgManager))
	cmd.AddCommand(stack.NewOutputsCmd(runtimeContainer, cfgManager))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// handleRootRunE handles the root command.
func handleRootRunE(
	cmd *cobra.Command,
	_ []string,
) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
