package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type JWTConfig struct {
	Secret      string `mapstructure:"secret"`
	Issuer      string `mapstructure:"issuer"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

type SecurityConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type AppConfig struct {
	PageSize     int  `mapstructure:"page_size"`
	StrictDelete bool `mapstructure:"strict_delete"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Security SecurityConfig `mapstructure:"security"`
	App      AppConfig      `mapstructure:"app"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from the given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in the current working
// directory. Environment variables with the UAS_ prefix override file
// values, e.g. UAS_JWT_SECRET for jwt.secret.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		v.SetDefault("jwt.expire_hours", 72)
		v.SetDefault("security.bcrypt_cost", 10)
		v.SetDefault("app.page_size", 10)
		v.SetDefault("app.strict_delete", true)

		v.SetEnvPrefix("UAS") // user account service
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		if err = v.ReadInConfig(); err != nil {
			err = fmt.Errorf("read config: %w", err)
			return
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		if err = validate(&c); err != nil {
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	if appConfig == nil {
		return nil, fmt.Errorf("config not loaded")
	}
	return appConfig, nil
}

// validate rejects configurations the service must not start with.
// The signing secret in particular has no usable default.
func validate(c *Config) error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required (set UAS_JWT_SECRET)")
	}
	if c.JWT.ExpireHours <= 0 {
		c.JWT.ExpireHours = 72
	}
	if c.App.PageSize <= 0 {
		c.App.PageSize = 10
	}
	return nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
