package stack

import (
	"fmt"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	"github.com/local-api-gateway/infra/pkg/cli/helpers"
	"github.com/local-api-gateway/infra/pkg/cli/lifecycle"
	"github.com/local-api-gateway/infra/pkg/svc/buildcontext"
	"github.com/local-api-gateway/infra/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// NewPreflightCmd creates the preflight command.
func NewPreflightCmd(loader lifecycle.ConfigLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check the image build context before an update",
		Long: "Check that the build context is a directory and the Dockerfile a regular file, " +
			"and summarize what .dockerignore sends to the builder.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := lifecycle.LoadStackConfig(loader, false)
			if err != nil {
				return err
			}

			notify.Titlef(cmd.OutOrStdout(), "🔍", "Preflight...")

			return RunPreflight(cmd, cfg)
		},
	}
}

// RunPreflight inspects the build context of cfg and reports the result on the command output.
func RunPreflight(cmd *cobra.Command, cfg v1alpha1.StackConfig) error {
	out := cmd.OutOrStdout()

	notify.Activityf(out, "inspecting build context '%s'", cfg.BuildContext)

	report, err := buildcontext.Inspect(helpers.GetWorkdir(cmd), cfg.BuildContext, cfg.Dockerfile)
	if err != nil {
		return fmt.Errorf("build context check failed: %w", err)
	}

	if report.DockerfileOutsideContext {
		notify.Warningf(out, "dockerfile '%s' is outside the build context", report.Dockerfile)
	}

	if report.DockerfileIgnored {
		notify.Warningf(out, "dockerfile '%s' is excluded by .dockerignore", report.Dockerfile)
	}

	notify.Successf(out, "build context ready: %d files (%d bytes), %d excluded by %d ignore patterns",
		report.Files, report.Bytes, report.Excluded, len(report.IgnorePatterns))

	return nil
}
