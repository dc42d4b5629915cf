package di

import (
	"os"

	"github.com/local-api-gateway/infra/pkg/svc/stackmanager"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// NewRuntime constructs the runtime used by the root command.
// It registers the logger and the Automation API stack manager factory.
func NewRuntime() *Runtime {
	return New(
		ProvideLogger,
		ProvideStackManagerFactory(stackmanager.DefaultFactory),
	)
}

// ProvideLogger registers a logrus logger writing to stderr at info level.
func ProvideLogger(i Injector) error {
	do.Provide(i, func(Injector) (*logrus.Logger, error) {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		logger.SetLevel(logrus.InfoLevel)

		return logger, nil
	})

	return nil
}

// ProvideStackManagerFactory returns a Provider registering factory.
func ProvideStackManagerFactory(factory stackmanager.Factory) Provider {
	return func(i Injector) error {
		do.Provide(i, func(Injector) (stackmanager.Factory, error) {
			return factory, nil
		})

		return nil
	}
}
