// Package config loads runner configuration from an optional YAML file
// and PIPESTAGE_-prefixed environment variables, with env taking
// precedence.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"

	"pipestage/pkg/domain"
)

// Config is the resolved runner configuration.
type Config struct {
	// TemplateRoot is the folder (local or object store) holding the
	// <module>.template.json documents.
	TemplateRoot string `mapstructure:"template_root"`
	// WorkingRoot is the local folder job working directories are created
	// under.
	WorkingRoot string `mapstructure:"working_root"`
	// Mock routes all transfers to the no-IO mock driver.
	Mock bool `mapstructure:"mock"`
	// ExecTimeout bounds tool runtime; zero means unbounded.
	ExecTimeout time.Duration `mapstructure:"exec_timeout"`
	// LogLevel is debug, info, warn, or error.
	LogLevel string `mapstructure:"log_level"`

	S3 S3Config `mapstructure:"s3"`
}

// S3Config configures the object-store driver. All fields are optional;
// credentials fall back to the ambient AWS chain.
type S3Config struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	PathStyle       bool   `mapstructure:"path_style"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	SessionToken    string `mapstructure:"session_token"`
}

// Load resolves the configuration. When configFile is empty, pipestage.yaml
// is looked up in the working directory and is optional.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("template_root", "")
	v.SetDefault("working_root", "/tmp/pipestage")
	v.SetDefault("mock", false)
	v.SetDefault("exec_timeout", time.Duration(0))
	v.SetDefault("log_level", "info")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.path_style", false)
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.session_token", "")

	v.SetEnvPrefix("PIPESTAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, domain.NewConfigError("config file unreadable", err)
		}
	} else {
		v.SetConfigName("pipestage")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, domain.NewConfigError("config file unreadable", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, domain.NewConfigError("config malformed", err)
	}
	return &cfg, nil
}
