// Package main is the Pulumi program entry point run by the engine for `pulumi up` in this project.
//
// The stack name selects the naming prefix. Build inputs default to the repository root and
// can be overridden per stack with the local-api-gateway:context, local-api-gateway:dockerfile
// and local-api-gateway:platform config keys. The AWS provider reads aws:region itself.
package main

import (
	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	pulumiprovisioner "github.com/local-api-gateway/infra/pkg/svc/provisioner/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

func main() {
	pulumi.Run(run)
}

func run(ctx *pulumi.Context) error {
	return pulumiprovisioner.Program(stackConfig(ctx))(ctx)
}

func stackConfig(ctx *pulumi.Context) v1alpha1.StackConfig {
	cfg := v1alpha1.NewStackConfig(ctx.Stack())

	if buildContext := config.Get(ctx, "context"); buildContext != "" {
		cfg.BuildContext = buildContext
	}

	if dockerfile := config.Get(ctx, "dockerfile"); dockerfile != "" {
		cfg.Dockerfile = dockerfile
	}

	cfg.Platform = config.Get(ctx, "platform")

	return cfg
}
