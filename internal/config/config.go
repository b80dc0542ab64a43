package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/billing"
	"github.com/ogulcanaydogan/aws-billing-notifier/pkg/message"
)

// Config holds all billing notifier configuration.
type Config struct {
	Slack   SlackConfig   `mapstructure:"slack"`
	AWS     AWSConfig     `mapstructure:"aws"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Message MessageConfig `mapstructure:"message"`
	Logging LoggingConfig `mapstructure:"logging"`
	// Timeout bounds a whole invocation. "0" disables it.
	Timeout string `mapstructure:"timeout"`
}

// SlackConfig defines the destination webhook.
type SlackConfig struct {
	PostURL string `mapstructure:"post_url"`
	Channel string `mapstructure:"channel"`
	Timeout string `mapstructure:"timeout"`
}

// AWSConfig defines CloudWatch client settings.
type AWSConfig struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// FetchConfig defines how the reported datapoint is chosen.
type FetchConfig struct {
	Selection string `mapstructure:"selection"`
}

// MessageConfig defines message rendering.
type MessageConfig struct {
	Locale string `mapstructure:"locale"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
// It does not validate; call Validate before building clients.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Lambda runtimes may not have a home directory.
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".billing-notifier"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Defaults
	v.SetDefault("slack.post_url", "")
	v.SetDefault("slack.channel", "")
	v.SetDefault("slack.timeout", "10s")
	v.SetDefault("timeout", "30s")
	v.SetDefault("aws.region", billing.DefaultRegion)
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("aws.access_key_id", "")
	v.SetDefault("aws.secret_access_key", "")
	v.SetDefault("fetch.selection", string(billing.SelectLatest))
	v.SetDefault("message.locale", message.DefaultLocale)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Environment variables
	v.SetEnvPrefix("NOTIFIER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("slack.post_url", "SLACK_POST_URL")
	_ = v.BindEnv("slack.channel", "SLACK_CHANNEL")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate reports every missing or malformed setting. All returned errors
// are *Error values joined together.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Slack.PostURL) == "" {
		errs = append(errs, missing("slack.post_url", "SLACK_POST_URL"))
	}
	if strings.TrimSpace(c.Slack.Channel) == "" {
		errs = append(errs, missing("slack.channel", "SLACK_CHANNEL"))
	}
	if _, err := parseDuration(c.Slack.Timeout); err != nil {
		errs = append(errs, invalid("slack.timeout", err))
	}
	if _, err := parseDuration(c.Timeout); err != nil {
		errs = append(errs, invalid("timeout", err))
	}

	return errors.Join(append(errs, c.validateRendering()...)...)
}

// ValidatePreview checks only the settings needed to fetch and format.
func (c *Config) ValidatePreview() error {
	var errs []error
	if _, err := parseDuration(c.Timeout); err != nil {
		errs = append(errs, invalid("timeout", err))
	}
	return errors.Join(append(errs, c.validateRendering()...)...)
}

func (c *Config) validateRendering() []error {
	var errs []error
	if _, err := billing.ParseSelection(c.Fetch.Selection); err != nil {
		errs = append(errs, invalid("fetch.selection", err))
	}
	if _, err := message.LookupLocale(c.Message.Locale); err != nil {
		errs = append(errs, invalid("message.locale", err))
	}
	return errs
}

// InvocationTimeout returns the parsed overall timeout.
func (c *Config) InvocationTimeout() time.Duration {
	d, _ := parseDuration(c.Timeout)
	return d
}

// SlackTimeout returns the parsed webhook client timeout.
func (c *Config) SlackTimeout() time.Duration {
	d, _ := parseDuration(c.Slack.Timeout)
	return d
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}
