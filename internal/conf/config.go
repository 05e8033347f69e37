package conf

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Trove  TroveConfig  `mapstructure:"trove"`
	Assist AssistConfig `mapstructure:"assist"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// TroveConfig configures the upstream Trove API client. APIKey arrives via
// the TROVE_API_KEY environment variable; an empty key does not prevent
// startup, the search endpoint degrades to a configuration error response
// instead.
type TroveConfig struct {
	APIHost      string `mapstructure:"api_host"`
	APIKey       string `mapstructure:"api_key"`
	Timeout      int    `mapstructure:"timeout"`       // seconds
	MaxRetries   int    `mapstructure:"max_retries"`   // default: 3
	RetryBackoff int    `mapstructure:"retry_backoff"` // seconds between attempts
}

type AssistConfig struct {
	APIHost     string  `mapstructure:"api_host"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"` // seconds
}

type LogConfig struct {
	Level            string        `mapstructure:"level"`
	Format           string        `mapstructure:"format"`
	Output           string        `mapstructure:"output"`
	File             FileLogConfig `mapstructure:"file"`
	EnableCaller     bool          `mapstructure:"enablecaller"`
	EnableStacktrace bool          `mapstructure:"enablestacktrace"`
}

type FileLogConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"maxsize"`
	MaxAge     int    `mapstructure:"maxage"`
	MaxBackups int    `mapstructure:"maxbackups"`
	Compress   bool   `mapstructure:"compress"`
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	// Secrets come from the environment, never the config file.
	viper.BindEnv("trove.api_key", "TROVE_API_KEY")
	viper.BindEnv("assist.api_key", "ASSIST_API_KEY")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Trove.APIHost == "" {
		c.Trove.APIHost = "https://api.trove.nla.gov.au"
	}
	if c.Trove.Timeout == 0 {
		c.Trove.Timeout = 15
	}
	if c.Trove.MaxRetries == 0 {
		c.Trove.MaxRetries = 3
	}
	if c.Trove.RetryBackoff == 0 {
		c.Trove.RetryBackoff = 3
	}
	if c.Assist.Model == "" {
		c.Assist.Model = "gpt-4o-mini"
	}
	if c.Assist.MaxTokens == 0 {
		c.Assist.MaxTokens = 1024
	}
	if c.Assist.Temperature == 0 {
		c.Assist.Temperature = 0.7
	}
	if c.Assist.Timeout == 0 {
		c.Assist.Timeout = 30
	}
}
