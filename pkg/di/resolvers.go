package di

import (
	"fmt"

	"github.com/local-api-gateway/infra/pkg/svc/stackmanager"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// ResolveLogger retrieves the logger dependency from the injector.
func ResolveLogger(injector Injector) (*logrus.Logger, error) {
	logger, err := do.Invoke[*logrus.Logger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}

// ResolveStackManagerFactory retrieves the stack manager factory from the injector.
func ResolveStackManagerFactory(injector Injector) (stackmanager.Factory, error) {
	factory, err := do.Invoke[stackmanager.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve stack manager factory dependency: %w", err)
	}

	return factory, nil
}
