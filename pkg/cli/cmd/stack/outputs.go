package stack

import (
	"fmt"

	"github.com/local-api-gateway/infra/pkg/cli/lifecycle"
	runtime "github.com/local-api-gateway/infra/pkg/di"
	"github.com/local-api-gateway/infra/pkg/svc/declarator"
	"github.com/local-api-gateway/infra/pkg/svc/imageref"
	"github.com/local-api-gateway/infra/pkg/utils/notify"
	"github.com/spf13/cobra"
)

// NewOutputsCmd creates the outputs command.
func NewOutputsCmd(runtimeContainer *runtime.Runtime, loader lifecycle.ConfigLoader) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:          "outputs",
		Short:        "Print the exported image name of a stack",
		Long:         "Print the image name exported by the last update and its parsed components.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runtimeContainer.Invoke(func(injector runtime.Injector) error {
				return runOutputs(cmd, injector, loader, raw)
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print only the image name")

	return cmd
}

func runOutputs(cmd *cobra.Command, injector runtime.Injector, loader lifecycle.ConfigLoader, raw bool) error {
	out := cmd.OutOrStdout()

	cfg, err := lifecycle.LoadStackConfig(loader, true)
	if err != nil {
		return err
	}

	manager, err := lifecycle.NewManager(cmd, injector)
	if err != nil {
		return err
	}

	outputs, err := manager.Outputs(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to read stack outputs: %w", err)
	}

	key := declarator.ImageOutputKey(cfg.Name)

	imageName, ok := outputs[key]
	if !ok || imageName == "" {
		return fmt.Errorf("%w: %s", ErrImageOutputMissing, key)
	}

	if raw {
		_, err = fmt.Fprintln(out, imageName)
		if err != nil {
			return fmt.Errorf("failed to write image name: %w", err)
		}

		return nil
	}

	ref, err := imageref.Parse(imageName)
	if err != nil {
		return fmt.Errorf("failed to parse output %s: %w", key, err)
	}

	notify.Infof(out, "%s = %s", key, imageName)
	notify.Infof(out, "registry: %s", ref.Registry)
	notify.Infof(out, "repository: %s", ref.Repository)

	if ref.Tag != "" {
		notify.Infof(out, "tag: %s", ref.Tag)
	}

	if ref.Digest != "" {
		notify.Infof(out, "digest: %s", ref.Digest)
	}

	return nil
}
