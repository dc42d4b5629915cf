package configmanager

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/local-api-gateway/infra/pkg/apis/stack/v1alpha1"
	configmanagerinterface "github.com/local-api-gateway/infra/pkg/io/config-manager"
	"github.com/local-api-gateway/infra/pkg/utils/envvar"
	"github.com/local-api-gateway/infra/pkg/utils/notify"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment variable read by the manager.
	EnvPrefix = "GATEWAYINFRA"
	// ConfigFileName is the config file base name searched in the working directory.
	ConfigFileName = "gatewayinfra"
	// ConfigFlag is the flag selecting an explicit config file.
	ConfigFlag = "config"
)

// ConfigManager implements configuration management for v1alpha1.StackConfig.
type ConfigManager struct {
	Viper           *viper.Viper
	Config          *v1alpha1.StackConfig
	Writer          io.Writer // Writer for output notifications
	fieldSelectors  []FieldSelector
	flags           *pflag.FlagSet // Flag set bound by AddFlags
	command         *cobra.Command // Associated Cobra command, its writer wins over Writer
	configLoaded    bool
	configFileFound bool
}

var _ configmanagerinterface.ConfigManager[v1alpha1.StackConfig] = (*ConfigManager)(nil)

// InitializeViper creates a Viper instance reading ./gatewayinfra.yaml and GATEWAYINFRA_* variables.
func InitializeViper() *viper.Viper {
	viperInstance := viper.New()
	viperInstance.SetConfigName(ConfigFileName)
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")
	viperInstance.SetEnvPrefix(EnvPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viperInstance.AutomaticEnv()

	return viperInstance
}

// NewConfigManager creates a new configuration manager for the given field selectors.
// Without selectors every StackConfig field is managed.
func NewConfigManager(writer io.Writer, fieldSelectors ...FieldSelector) *ConfigManager {
	if len(fieldSelectors) == 0 {
		fieldSelectors = DefaultFieldSelectors()
	}

	viperInstance := InitializeViper()

	for _, selector := range fieldSelectors {
		// Unmarshal only sees keys Viper knows about, so env-only values need a registered default.
		viperInstance.SetDefault(selector.Key, selector.DefaultValue)
	}

	return &ConfigManager{
		Viper:          viperInstance,
		Config:         &v1alpha1.StackConfig{},
		Writer:         writer,
		fieldSelectors: fieldSelectors,
	}
}

// NewCommandConfigManager constructs a ConfigManager bound to the persistent flags of cmd.
func NewCommandConfigManager(cmd *cobra.Command, selectors ...FieldSelector) *ConfigManager {
	manager := NewConfigManager(cmd.OutOrStdout(), selectors...)
	manager.command = cmd
	manager.AddFlags(cmd.PersistentFlags())

	return manager
}

// AddFlags registers one string flag per field selector plus --config, and binds them to Viper.
func (m *ConfigManager) AddFlags(flags *pflag.FlagSet) {
	for _, selector := range m.fieldSelectors {
		flags.StringP(selector.Key, selector.Shorthand, selector.DefaultValue, selector.Description)
		_ = m.Viper.BindPFlag(selector.Key, flags.Lookup(selector.Key))
	}

	flags.String(ConfigFlag, "", "Path to a YAML config file (default ./"+ConfigFileName+".yaml)")

	m.flags = flags
}

// ConfigFileFound reports whether the last Load read a config file.
func (m *ConfigManager) ConfigFileFound() bool {
	return m.configFileFound
}

// Load loads the configuration.
// Configuration priority: defaults < config file < environment variables < flags.
func (m *ConfigManager) Load(
	opts configmanagerinterface.LoadOptions,
) (*v1alpha1.StackConfig, error) {
	if m.configLoaded {
		if !opts.Silent {
			notify.Successf(m.writer(), "config already loaded, reusing existing config")
		}

		return m.Config, nil
	}

	if !opts.Silent {
		notify.Activityf(m.writer(), "loading stack config")
	}

	if !opts.IgnoreConfigFile {
		err := m.readConfig(opts.Silent)
		if err != nil {
			return nil, err
		}
	}

	err := m.unmarshal()
	if err != nil {
		return nil, err
	}

	err = m.applyFlagOverrides()
	if err != nil {
		return nil, err
	}

	m.expandEnvironment(opts.Silent)

	if m.Config.Name == "" {
		m.Config.Name = opts.FallbackStackName
	}

	*m.Config = m.Config.WithDefaults()

	if !opts.SkipValidation {
		err = m.Config.Validate()
		if err != nil {
			return nil, fmt.Errorf("validate stack config: %w", err)
		}
	}

	if !opts.Silent {
		notify.Successf(m.writer(), "config loaded for stack '%s'", m.Config.Name)
	}

	m.configLoaded = true

	return m.Config, nil
}

func (m *ConfigManager) readConfig(silent bool) error {
	explicit := m.explicitConfigFile()
	if explicit != "" {
		m.Viper.SetConfigFile(explicit)
	}

	err := m.Viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		m.configFileFound = false

		if !silent {
			notify.Activityf(m.writer(), "using default config")
		}

		return nil
	}

	m.configFileFound = true

	if !silent {
		notify.Activityf(m.writer(), "'%s' found", m.Viper.ConfigFileUsed())
	}

	return nil
}

func (m *ConfigManager) unmarshal() error {
	decoderConfig := func(dc *mapstructure.DecoderConfig) {
		dc.WeaklyTypedInput = true
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			trimSpaceHook(),
		)
	}

	err := m.Viper.Unmarshal(m.Config, decoderConfig)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// applyFlagOverrides writes explicitly set flags straight into the config.
func (m *ConfigManager) applyFlagOverrides() error {
	if m.flags == nil {
		return nil
	}

	for _, selector := range m.fieldSelectors {
		flag := m.flags.Lookup(selector.Key)
		if flag == nil || !flag.Changed {
			continue
		}

		field := selector.Selector(m.Config)
		if field == nil {
			return fmt.Errorf("%w: %s", ErrFieldNotAddressable, selector.Key)
		}

		*field = strings.TrimSpace(flag.Value.String())
	}

	return nil
}

// expandEnvironment resolves ${NAME} and ${NAME:-default} placeholders in every managed field.
func (m *ConfigManager) expandEnvironment(silent bool) {
	for _, selector := range m.fieldSelectors {
		field := selector.Selector(m.Config)
		if field == nil {
			continue
		}

		expanded, missing := envvar.Expand(*field)
		*field = expanded

		if !silent {
			for _, name := range missing {
				notify.Warningf(m.writer(), "environment variable '%s' referenced by '%s' is not set", name, selector.Key)
			}
		}
	}
}

func (m *ConfigManager) explicitConfigFile() string {
	if m.flags == nil {
		return ""
	}

	flag := m.flags.Lookup(ConfigFlag)
	if flag == nil {
		return ""
	}

	return flag.Value.String()
}

func (m *ConfigManager) writer() io.Writer {
	if m.command != nil {
		return m.command.OutOrStdout()
	}

	if m.Writer == nil {
		return io.Discard
	}

	return m.Writer
}

func trimSpaceHook() mapstructure.DecodeHookFuncKind {
	return func(from, to reflect.Kind, data any) (any, error) {
		if from != reflect.String || to != reflect.String {
			return data, nil
		}

		str, ok := data.(string)
		if !ok {
			return data, nil
		}

		return strings.TrimSpace(str), nil
	}
}
