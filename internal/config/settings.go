package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. FINFREE_STORE_DRIVER
const EnvPrefix = "FINFREE"

// Store drivers
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// Settings are the application settings, as opposed to the ledger data
type Settings struct {
	LogLevel  string        `mapstructure:"log_level"`
	LogFormat string        `mapstructure:"log_format"`
	Currency  string        `mapstructure:"currency"`
	Store     StoreSettings `mapstructure:"store"`
	API       APISettings   `mapstructure:"api"`
}

// StoreSettings selects where the state is persisted
type StoreSettings struct {
	Driver        string `mapstructure:"driver"`
	Path          string `mapstructure:"path"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisKey      string `mapstructure:"redis_key"`
}

// APISettings configures the HTTP server
type APISettings struct {
	Addr string `mapstructure:"addr"`
}

// SetDefaults registers the default settings on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("currency", "INR")
	v.SetDefault("store.driver", StoreFile)
	v.SetDefault("store.path", "finfree.yaml")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.redis_key", "finfree:state")
	v.SetDefault("api.addr", ":8080")
}

// LoadSettings reads settings from defaults, an optional settings file and FINFREE_* environment
// variables, in increasing order of precedence. A .env file in the working directory is loaded
// into the environment first when present. An empty configFile searches for finfree-settings.yaml
// in the working directory and $HOME/.config/finfree.
func LoadSettings(configFile string) (*Settings, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("finfree-settings")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.config/finfree")
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

// Validate checks the settings values
func (s *Settings) Validate() error {
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json, got %q", s.LogFormat)
	}

	switch s.Store.Driver {
	case StoreFile:
		if s.Store.Path == "" {
			return fmt.Errorf("store.path is required for the file store")
		}
	case StoreRedis:
		if s.Store.RedisAddr == "" {
			return fmt.Errorf("store.redis_addr is required for the redis store")
		}
		if s.Store.RedisKey == "" {
			return fmt.Errorf("store.redis_key is required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store driver %q", s.Store.Driver)
	}

	if len(s.Currency) != 3 {
		return fmt.Errorf("currency must be an ISO 4217 code, got %q", s.Currency)
	}
	return nil
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	// existing environment variables win over .env entries
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
