// Package main provides a CLI tool to generate the JSON schema of gatewayinfra.yaml.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
)

const (
	dirPermissions  = 0o750
	filePermissions = 0o600
)

// propertyDescriptions documents each config key in the generated schema.
//
//nolint:gochecknoglobals // static lookup table
var propertyDescriptions = map[string]string{
	"stack":      "Stack name used as the prefix of every resource name.",
	"region":     "AWS region. Empty uses the provider configuration.",
	"context":    "Image build context, relative to the program directory.",
	"dockerfile": "Dockerfile path, relative to the program directory.",
	"platform":   "Target platform of the image build, for example linux/amd64.",
}

func main() {
	if err := run(os.Stdout, os.Stderr, os.Args); err != nil {
		os.Exit(1)
	}
}

func run(stdout, stderr io.Writer, args []string) error {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&v1alpha1.StackConfig{})

	customizeSchema(schema)

	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "Error marshaling schema: %v\n", err)
		return fmt.Errorf("marshal schema: %w", err)
	}

	outputPath := "schemas/gatewayinfra.schema.json"
	if len(args) > 1 {
		outputPath = args[1]
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), dirPermissions); err != nil {
		fmt.Fprintf(stderr, "Error creating directory: %v\n", err)
		return fmt.Errorf("create directory: %w", err)
	}

	if err := os.WriteFile(outputPath, schemaJSON, filePermissions); err != nil {
		fmt.Fprintf(stderr, "Error writing schema: %v\n", err)
		return fmt.Errorf("write schema: %w", err)
	}

	fmt.Fprintf(stdout, "Successfully generated JSON schema at %s\n", outputPath)
	return nil
}

// customizeSchema applies all schema customizations.
func customizeSchema(schema *jsonschema.Schema) {
	schema.ID = ""
	schema.Title = "Local API Gateway Stack Configuration"
	schema.Description = "JSON schema for the stack configuration file (gatewayinfra.yaml)"

	// Every key can come from flags or environment instead of the file.
	schema.Required = nil

	if schema.Properties == nil {
		return
	}

	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		if description, ok := propertyDescriptions[pair.Key]; ok {
			pair.Value.Description = description
		}
	}

	if p, ok := schema.Properties.Get("stack"); ok && p != nil {
		p.Pattern = v1alpha1.StackNamePattern
		maxLength := uint64(v1alpha1.StackNameMaxLength)
		p.MaxLength = &maxLength
	}

	if p, ok := schema.Properties.Get("context"); ok && p != nil {
		p.Default = v1alpha1.DefaultBuildContext
	}

	if p, ok := schema.Properties.Get("dockerfile"); ok && p != nil {
		p.Default = v1alpha1.DefaultDockerfile
	}
}
