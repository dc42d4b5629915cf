package stack

import (
	"context"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	"github.com/local-api-gateway/infra/pkg/cli/lifecycle"
	runtime "github.com/local-api-gateway/infra/pkg/di"
	"github.com/local-api-gateway/infra/pkg/svc/stackmanager"
	"github.com/spf13/cobra"
)

// SkipPreflightFlagName is the up flag that skips the build context check.
const SkipPreflightFlagName = "skip-preflight"

// NewPreviewCmd creates the preview command.
func NewPreviewCmd(runtimeContainer *runtime.Runtime, loader lifecycle.ConfigLoader) *cobra.Command {
	return lifecycle.NewEngineCmd(runtimeContainer, loader, lifecycle.EngineCommandConfig{
		Use:          "preview",
		Short:        "Show the changes an update would make",
		Long:         "Compute the changes an update of the stack would make, without applying them.",
		TitleEmoji:   "🔎",
		TitleContent: "Preview stack...",
		Activity:     "preview",
		Success:      "preview complete",
		Action: func(
			ctx context.Context,
			manager stackmanager.Manager,
			cfg v1alpha1.StackConfig,
		) (stackmanager.Result, error) {
			return manager.Preview(ctx, cfg)
		},
	})
}

// NewUpCmd creates the up command.
func NewUpCmd(runtimeContainer *runtime.Runtime, loader lifecycle.ConfigLoader) *cobra.Command {
	var skipPreflight bool

	cmd := lifecycle.NewEngineCmd(runtimeContainer, loader, lifecycle.EngineCommandConfig{
		Use:   "up",
		Short: "Create or update the registry, its policies and the image",
		Long: "Build the image, push it to the stack's registry and export its name. " +
			"The registry is protected and survives 'destroy'.",
		TitleEmoji:   "🚀",
		TitleContent: "Update stack...",
		Activity:     "update",
		Success:      "stack updated",
		BeforeAction: func(cmd *cobra.Command, cfg v1alpha1.StackConfig) error {
			if skipPreflight {
				return nil
			}

			return RunPreflight(cmd, cfg)
		},
		Action: func(
			ctx context.Context,
			manager stackmanager.Manager,
			cfg v1alpha1.StackConfig,
		) (stackmanager.Result, error) {
			return manager.Up(ctx, cfg)
		},
	})

	cmd.Flags().BoolVar(&skipPreflight, SkipPreflightFlagName, false, "Skip the build context check")

	return cmd
}

// NewDestroyCmd creates the destroy command.
func NewDestroyCmd(runtimeContainer *runtime.Runtime, loader lifecycle.ConfigLoader) *cobra.Command {
	return lifecycle.NewEngineCmd(runtimeContainer, loader, lifecycle.EngineCommandConfig{
		Use:   "destroy",
		Short: "Delete the stack's resources",
		Long: "Delete the stack's resources. The registry is protected, so the engine refuses " +
			"to delete it until the protection is lifted outside this tool.",
		TitleEmoji:   "🗑️",
		TitleContent: "Destroy stack...",
		Activity:     "destroy",
		Success:      "stack destroyed",
		Action: func(
			ctx context.Context,
			manager stackmanager.Manager,
			cfg v1alpha1.StackConfig,
		) (stackmanager.Result, error) {
			return manager.Destroy(ctx, cfg)
		},
	})
}
