package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
// Precedence is defaults < config.yaml < EED_* environment variables.
type Config struct {
	INE     INEConfig     `yaml:"ine" envconfig:"INE"`
	Site    SiteConfig    `yaml:"site" envconfig:"SITE"`
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
}

// INEConfig contains Tempus 3 client configuration
type INEConfig struct {
	BaseURL     string        `yaml:"base_url" envconfig:"BASE_URL" validate:"required,url"`
	Language    string        `yaml:"language" envconfig:"LANGUAGE" validate:"oneof=ES EN"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	RateRPS     float64       `yaml:"rate_rps" envconfig:"RATE_RPS" validate:"gt=0"`
	RateBurst   int           `yaml:"rate_burst" envconfig:"RATE_BURST" validate:"gte=1"`
	CalendarURL string        `yaml:"calendar_url" envconfig:"CALENDAR_URL" validate:"required,url"`
}

// SiteConfig controls what ends up on the generated site
type SiteConfig struct {
	Region   string `yaml:"region" envconfig:"REGION" validate:"required"`
	Category string `yaml:"category" envconfig:"CATEGORY"`
	Title    string `yaml:"title" envconfig:"TITLE"`
	Footer   string `yaml:"footer" envconfig:"FOOTER"`
	Catalog  string `yaml:"catalog" envconfig:"CATALOG" validate:"required"`
}

// ServerConfig contains preview server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir  string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	SiteDir  string `yaml:"site_dir" envconfig:"SITE_DIR" validate:"required"`
	CardsDir string `yaml:"cards_dir" envconfig:"CARDS_DIR" validate:"required"`
	LogsDir  string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

var validate = validator.New()

// Load loads configuration from defaults, an optional config file and
// environment variables, in increasing precedence.
func Load() (*Config, error) {
	cfg := Default()

	if path := findConfigFile(); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Only variables that are actually set override; the structs carry no
	// envconfig defaults so unset variables leave fields untouched.
	if err := envconfig.Process("EED", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg; keys absent from the file
// keep their current values.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// findConfigFile returns the path to the config file, if any
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		INE: INEConfig{
			BaseURL:     "https://servicios.ine.es/wstempus/js",
			Language:    "ES",
			Timeout:     30 * time.Second,
			RateRPS:     2,
			RateBurst:   1,
			CalendarURL: "https://www.ine.es/calendario/calendario.ics",
		},
		Site: SiteConfig{
			Region:   "Extremadura",
			Category: "industria",
			Title:    "Industria y Empresa",
			Footer:   "Extremadura en Datos · Industria y Empresa",
			Catalog:  "Datos Extremadura Mensual.xlsx",
		},
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "logs/app.log",
		},
		Paths: PathsConfig{
			DataDir:  "docs/data",
			SiteDir:  "docs",
			CardsDir: "docs/cards",
			LogsDir:  "logs",
		},
	}
}
