package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort           string        `yaml:"http_port"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
	MaxRequestBodySize int64         `yaml:"max_request_body_size"`
	DataDir            string        `yaml:"data_dir"`

	Redis RedisConfig `yaml:"redis"`
	Log   LogConfig   `yaml:"log"`
	Seed  SeedConfig  `yaml:"seed"`
}

type RedisConfig struct {
	// Addr empty disables the document cache.
	Addr        string        `yaml:"addr"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	DocumentTTL time.Duration `yaml:"document_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SeedConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Products []SeedProduct `yaml:"products"`
	Users    []SeedUser    `yaml:"users"`
}

type SeedProduct struct {
	ID    string  `yaml:"id"`
	Name  string  `yaml:"name"`
	Price float64 `yaml:"price"`
	Stock int     `yaml:"stock"`
}

type SeedUser struct {
	ID       string `yaml:"id"`
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Address  string `yaml:"address"`
}

// Default returns the configuration used when no file or env overrides are given.
func Default() *Config {
	return &Config{
		HTTPPort:           "8080",
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
		MaxRequestBodySize: 1 << 20, // 1MB
		DataDir:            "./data",
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			DocumentTTL: 15 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Seed: SeedConfig{
			Enabled: true,
			Products: []SeedProduct{
				{ID: "P001", Name: "Laptop", Price: 999.99, Stock: 10},
				{ID: "P002", Name: "Mouse", Price: 29.99, Stock: 50},
				{ID: "P003", Name: "Keyboard", Price: 99.99, Stock: 30},
				{ID: "P004", Name: "Monitor", Price: 299.99, Stock: 15},
				{ID: "P005", Name: "Headphones", Price: 149.99, Stock: 20},
			},
			Users: []SeedUser{
				{ID: "U001", Username: "john_doe", Email: "john@example.com", Address: "Sample Address"},
				{ID: "U002", Username: "anna_nowak", Email: "anna@example.com", Address: "Sample Address"},
				{ID: "U003", Username: "bob_smith", Email: "bob@example.com", Address: "Sample Address"},
			},
		},
	}
}

// Load reads the YAML file at path (skipped when path is empty) over the
// defaults, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.HTTPPort = getEnv("HTTP_PORT", c.HTTPPort)
	c.DataDir = getEnv("DATA_DIR", c.DataDir)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)

	var err error
	if c.RequestTimeout, err = getEnvDuration("REQUEST_TIMEOUT", c.RequestTimeout); err != nil {
		return err
	}
	if c.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout); err != nil {
		return err
	}
	if v := os.Getenv("SEED_DEMO"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SEED_DEMO: %w", err)
		}
		c.Seed.Enabled = enabled
	}
	return nil
}

func (c *Config) Validate() error {
	if c.HTTPPort == "" {
		return errors.New("http_port is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}
	if c.MaxRequestBodySize <= 0 {
		return errors.New("max_request_body_size must be positive")
	}
	if c.DataDir == "" {
		return errors.New("data_dir is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
