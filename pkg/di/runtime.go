// Package di wires the command dependencies with samber/do.
package di

import (
	"fmt"

	"github.com/samber/do/v2"
)

// Injector is the dependency container handed to command handlers.
type Injector = do.Injector

// Provider registers one dependency with an injector.
type Provider func(Injector) error

// Runtime builds a fresh injector from its providers for every invocation.
type Runtime struct {
	providers []Provider
}

// New creates a Runtime from the given providers.
func New(providers ...Provider) *Runtime {
	return &Runtime{providers: providers}
}

// Invoke registers all providers on a new injector and runs handler with it.
func (r *Runtime) Invoke(handler func(Injector) error) error {
	injector := do.New()

	for _, provide := range r.providers {
		err := provide(injector)
		if err != nil {
			return fmt.Errorf("register dependencies: %w", err)
		}
	}

	return handler(injector)
}
