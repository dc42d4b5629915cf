package helpers

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	// VerboseFlagName is the global flag raising the log level to debug.
	VerboseFlagName = "verbose"
	// WorkdirFlagName is the global flag naming the program directory.
	WorkdirFlagName = "workdir"
	// DefaultWorkdir is the program directory, holding the engine entry point.
	DefaultWorkdir = "infra"
)

// GetVerbose reports whether --verbose was set. Missing flags read as false.
func GetVerbose(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool(VerboseFlagName)
	if err != nil {
		return false
	}

	return verbose
}

// GetWorkdir returns the --workdir value, or DefaultWorkdir when the flag is missing or empty.
func GetWorkdir(cmd *cobra.Command) string {
	workdir, err := cmd.Flags().GetString(WorkdirFlagName)
	if err != nil || workdir == "" {
		return DefaultWorkdir
	}

	return workdir
}

// ConfigureLogger applies the --verbose flag to logger.
func ConfigureLogger(cmd *cobra.Command, logger *logrus.Logger) {
	if GetVerbose(cmd) {
		logger.SetLevel(logrus.DebugLevel)
	}
}
