package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/eleven-am/bistro/internal/logger"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = "bistro.yaml"

var configLocations = []string{"bistro.yaml", "bistro.yml", ".bistro.yaml", ".bistro.yml"}

// BistroConfig represents the bistro.yaml configuration structure.
// Every field can be overridden from the environment.
type BistroConfig struct {
	Version string `yaml:"version"`

	Database struct {
		Driver          string        `yaml:"driver" env:"BISTRO_DB_DRIVER"`
		URL             string        `yaml:"url" env:"BISTRO_DB_URL"`
		MaxConnections  int           `yaml:"max_connections" env:"BISTRO_DB_MAX_CONNECTIONS"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"BISTRO_DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Logging struct {
		Level string `yaml:"level" env:"BISTRO_LOG_LEVEL"`
	} `yaml:"logging"`

	// Path is the file the configuration was read from, empty when none was found
	Path string `yaml:"-"`
}

// DefaultConfig returns the settings used when no file or variable says otherwise
func DefaultConfig() *BistroConfig {
	config := &BistroConfig{Version: "1"}
	applyDefaults(config)
	return config
}

func applyDefaults(config *BistroConfig) {
	if config.Version == "" {
		config.Version = "1"
	}
	if config.Database.Driver == "" {
		config.Database.Driver = "sqlite"
	}
	if config.Database.URL == "" {
		config.Database.URL = "bistro.db"
	}
	if config.Database.MaxConnections == 0 {
		config.Database.MaxConnections = 1
	}
	if config.Database.ConnMaxLifetime == 0 {
		config.Database.ConnMaxLifetime = 10 * time.Minute
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "warn"
	}
}

// LoadConfig reads the configuration file, then the .env file, then the
// environment. An explicit path must exist; otherwise the default locations
// are searched and a missing file is not an error.
func LoadConfig(path string) (*BistroConfig, error) {
	config := &BistroConfig{}

	if path == "" {
		path = GetConfigPath()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		config.Path = path
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	applyDefaults(config)

	logger.Config().Debug("configuration loaded",
		"path", config.Path,
		"driver", config.Database.Driver,
		"level", config.Logging.Level,
	)
	return config, nil
}

// loadDotEnv exports the variables of an existing .env file without
// overriding variables already set in the process.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// GetConfigPath returns BISTRO_CONFIG or the first default location that exists
func GetConfigPath() string {
	if path := os.Getenv("BISTRO_CONFIG"); path != "" {
		return path
	}

	for _, loc := range configLocations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

func SaveConfig(config *BistroConfig, path string) error {
	if path == "" {
		path = defaultConfigFile
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
