package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/wilayah/internal/config"
	"github.com/agentstation/wilayah/pkg/constants"
	"github.com/agentstation/wilayah/pkg/errors"
)

// envPrefix prefixes every environment variable bound to a setting,
// e.g. WILAYAH_ROOT or WILAYAH_REGION_THRESHOLD.
const envPrefix = "WILAYAH"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Reconciliation settings
	Settings config.Settings

	// Logging configuration. LogLevel is the explicit --log-level; the
	// LOG_LEVEL environment variable is consulted when it is empty.
	LogLevel  string
	LogFormat string
	LogOutput string

	viper *viper.Viper
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables
// 3. .env files
// 4. Config file (~/.wilayah.yaml or ./.wilayah.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := newViper()

	configFile := v.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)
	}

	if err := readConfig(v, configFile != ""); err != nil {
		return nil, err
	}

	return &Config{
		ConfigFile: v.ConfigFileUsed(),
		Settings:   config.Load(v),
		LogFormat:  getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:  getEnvOrDefault("LOG_OUTPUT", "stderr"),
		viper:      v,
	}, nil
}

// newViper creates a Viper instance with the setting defaults registered
// and environment variables bound.
func newViper() *viper.Viper {
	v := viper.New()
	config.SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	return v
}

// UseConfigFile reads path and reloads the settings from it. It backs the
// --config flag, which is only known once cobra has parsed the arguments.
func (c *Config) UseConfigFile(path string) error {
	if c.viper == nil {
		c.viper = newViper()
	}
	v := c.viper
	v.SetConfigFile(path)
	if err := readConfig(v, true); err != nil {
		return err
	}
	c.ConfigFile = v.ConfigFileUsed()
	c.Settings = config.Load(v)
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	c.LogLevel = logLevel
}

// readConfig reads the config file. A missing file is only an error when
// it was named explicitly.
func readConfig(v *viper.Viper, explicit bool) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !explicit && errors.As(err, &notFound) {
		return nil
	}
	return errors.NewConfigError("config file", err.Error(), err)
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := config.GetString(key); value != "" {
		return value
	}
	return defaultValue
}
