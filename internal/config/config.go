package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Database struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Schema   string `yaml:"schema"`
	Default  bool   `yaml:"default"`
}

// ConnString renders a lib/pq keyword/value connection string.
func (d Database) ConnString() string {
	schema := d.Schema
	if schema == "" {
		schema = "public"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable search_path=%s,public",
		d.Host, d.Port, d.User, d.Password, d.Database, schema)
}

type Config struct {
	Application struct {
		Name     string `yaml:"name"`
		Version  string `yaml:"version"`
		Author   string `yaml:"author"`
		Language string `yaml:"language"`
	} `yaml:"application"`

	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Database []Database `yaml:"database"`

	Catalog struct {
		Path string `yaml:"path"`
	} `yaml:"catalog"`

	// Records names where grid rows come from: a fixture file, or a query
	// against the default database.
	Records struct {
		File  string `yaml:"file"`
		Query string `yaml:"query"`
	} `yaml:"records"`

	Sessions struct {
		Max         int           `yaml:"max"`
		IdleTimeout time.Duration `yaml:"idle_timeout"`
		AbsTimeout  time.Duration `yaml:"abs_timeout"`
	} `yaml:"sessions"`
}

// Load reads a YAML config file after expanding environment variables.
// A .env file next to the process is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // Ignore error as it might not exist in prod

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes config bytes, expanding ${VAR} references and filling defaults.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Application.Language == "" {
		cfg.Application.Language = "en"
	}
	if cfg.Sessions.Max == 0 {
		cfg.Sessions.Max = 100
	}
	if cfg.Sessions.IdleTimeout == 0 {
		cfg.Sessions.IdleTimeout = 30 * time.Minute
	}
	if cfg.Sessions.AbsTimeout == 0 {
		cfg.Sessions.AbsTimeout = 8 * time.Hour
	}
	return &cfg, nil
}

// DefaultDatabase returns the entry flagged default, or the first one.
func (c *Config) DefaultDatabase() (Database, bool) {
	for _, d := range c.Database {
		if d.Default {
			return d, true
		}
	}
	if len(c.Database) > 0 {
		return c.Database[0], true
	}
	return Database{}, false
}
