package stack

import (
	"fmt"
	"io"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	"github.com/local-api-gateway/infra/pkg/cli/lifecycle"
	configmanagerinterface "github.com/local-api-gateway/infra/pkg/io/config-manager"
	jsonmarshaller "github.com/local-api-gateway/infra/pkg/io/marshaller/json"
	yamlmarshaller "github.com/local-api-gateway/infra/pkg/io/marshaller/yaml"
	"github.com/local-api-gateway/infra/pkg/svc/declarator"
	"github.com/spf13/cobra"
)

// Render output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputDOT  = "dot"
)

const renderCmdLong = `Print the declared resources of a stack and the order the engine applies them in.

Nothing is contacted: the declaration is computed locally from the stack name and
build inputs. Without --stack the "dev" stack is rendered.`

// NewRenderCmd creates the render command.
func NewRenderCmd(loader lifecycle.ConfigLoader) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:          "render",
		Short:        "Print the stack declaration without contacting the engine",
		Long:         renderCmdLong,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loader.Load(configmanagerinterface.LoadOptions{
				Silent:            true,
				FallbackStackName: v1alpha1.DefaultStackName,
			})
			if err != nil {
				return fmt.Errorf("failed to load stack config: %w", err)
			}

			decl, err := declarator.Declare(*cfg)
			if err != nil {
				return fmt.Errorf("failed to declare stack: %w", err)
			}

			return WriteDeclaration(cmd.OutOrStdout(), decl, format)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", OutputYAML, "Output format (json, yaml, dot)")

	return cmd
}

// WriteDeclaration writes decl to out in the given format.
func WriteDeclaration(out io.Writer, decl *declarator.Declaration, format string) error {
	var (
		rendered string
		err      error
	)

	switch format {
	case OutputJSON:
		rendered, err = jsonmarshaller.NewMarshaller[*declarator.Declaration]().Marshal(decl)
	case OutputYAML:
		rendered, err = yamlmarshaller.NewMarshaller[*declarator.Declaration]().Marshal(decl)
	case OutputDOT:
		rendered = decl.Graph.DOT()
	default:
		return fmt.Errorf(
			"%w: %q (want %s, %s or %s)",
			ErrUnsupportedOutputFormat, format, OutputJSON, OutputYAML, OutputDOT,
		)
	}

	if err != nil {
		return fmt.Errorf("failed to render declaration as %s: %w", format, err)
	}

	_, err = io.WriteString(out, rendered)
	if err != nil {
		return fmt.Errorf("failed to write declaration: %w", err)
	}

	return nil
}
