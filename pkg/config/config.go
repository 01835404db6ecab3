package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is consulted when TIL_CONFIG is not set.
	DefaultConfigPath = "/etc/til/til.yml"

	// EnvProduction and EnvTest are the recognised environments. The test
	// environment selects the separate test database and port.
	EnvProduction = "production"
	EnvTest       = "test"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// Config holds all TIL server configuration settings.
type Config struct {
	// Environment is "production" or "test"
	Environment string `yaml:"environment"`

	// BindAddress and Port control the HTTP listener
	BindAddress string `yaml:"bind_address"`
	Port        string `yaml:"port"`

	// TemplateDir, when set, switches the renderer to on-disk templates
	// with change watching (development mode)
	TemplateDir string `yaml:"template_dir"`

	Database DatabaseConfig `yaml:"database"`
}

func newDefault() *Config {
	return &Config{
		Environment: EnvProduction,
		BindAddress: "0.0.0.0",
		Port:        "8080",
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     0, // resolved per environment in finalize
			User:     "til",
			Password: "password",
			Name:     "",
		},
	}
}

// Load builds the configuration from the YAML config file (if present)
// overlaid with environment variables. Defaults follow the documented
// environment contract: in the test environment the database name and port
// switch to til_test and 5433.
func Load() (*Config, error) {
	cfg := newDefault()

	path := os.Getenv("TIL_CONFIG")
	if path == "" {
		path = DefaultConfigPath
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	applyEnv(cfg)
	finalize(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TIL_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("BIND_ADDRESS"); v != "" {
		cfg.BindAddress = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("TIL_TEMPLATE_DIR"); v != "" {
		cfg.TemplateDir = v
	}
	if v := os.Getenv("DATABASE_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DATABASE_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DATABASE_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DATABASE_DB"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("DATABASE_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Database.Port = port
		}
	}
}

func finalize(cfg *Config) {
	test := cfg.Environment == EnvTest
	if cfg.Database.Port == 0 {
		if test {
			cfg.Database.Port = 5433
		} else {
			cfg.Database.Port = 5432
		}
	}
	if cfg.Database.Name == "" {
		if test {
			cfg.Database.Name = "til_test"
		} else {
			cfg.Database.Name = "til"
		}
	}
}

// DatabaseURL returns the PostgreSQL connection string. DATABASE_URL, when
// set, wins outright over the individual settings.
func (c *Config) DatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}
