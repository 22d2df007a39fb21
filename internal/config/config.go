package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort        = 8080
	DefaultStoreDriver = "memory"
)

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port int `yaml:"port" validate:"min=0,max=65535"`
}

// StoreConfig selects and configures the record store backend
type StoreConfig struct {
	Driver string `yaml:"driver" validate:"omitempty,oneof=postgres memory"`
	DSN    string `yaml:"dsn"`
}

// FunctionsConfig locates the remote function endpoint and the
// functions the core invokes on it
type FunctionsConfig struct {
	BaseURL   string `yaml:"base_url" validate:"omitempty,url"`
	TicketPDF string `yaml:"ticket_pdf"`
}

// AppConfig is the application configuration
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Store     StoreConfig     `yaml:"store"`
	Functions FunctionsConfig `yaml:"functions"`
}

// Load reads config.yml if present, applies environment overrides,
// and validates the result. A missing file is not an error; every
// setting has a default or an env form.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}

	paths := []string{"config.yml", "./config/config.yml"}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", p, err)
		}
		break
	}

	applyEnv(cfg)

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = DefaultStoreDriver
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Store.Driver == "postgres" && cfg.Store.DSN == "" {
		return nil, errors.New("store driver postgres requires a DSN (DATABASE_URL)")
	}

	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if port := os.Getenv("API_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = n
		}
	}
	if driver := os.Getenv("STORE_DRIVER"); driver != "" {
		cfg.Store.Driver = driver
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Store.DSN = dsn
	}
	if url := os.Getenv("FUNCTIONS_BASE_URL"); url != "" {
		cfg.Functions.BaseURL = url
	}
	if fn := os.Getenv("TICKET_PDF_FUNCTION"); fn != "" {
		cfg.Functions.TicketPDF = fn
	}
}
