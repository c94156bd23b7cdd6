// Package config loads the service configuration from a YAML file.
// The resulting Config is built once at startup and passed explicitly to
// every component that needs it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// MaxKeyLength matches the width of the key and secret_key columns.
const MaxKeyLength = 64

type Config struct {
	Env             string `yaml:"env"`
	BaseURL         string `yaml:"base_url"`
	KeyLength       int    `yaml:"key_length"`
	SecretKeyLength int    `yaml:"secret_key_length"`
	MaxRetries      int    `yaml:"max_retries"`
	MigrationsPath  string `yaml:"migrations_path"`
	DocsPath        string `yaml:"docs_path"`
	HTTPServer      `yaml:"http_server"`
	Postgres        `yaml:"postgres"`
}

type HTTPServer struct {
	Port           int           `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
	MaxHeaderBytes int           `yaml:"max_header_bytes"`
	CertFile       string        `yaml:"cert_file"`
	KeyFile        string        `yaml:"key_file"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   10 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type Postgres struct {
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	DB              string        `yaml:"db"`
	SSLMode         string        `yaml:"sslmode"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
}

var defaultPostgres = Postgres{
	Host:            "localhost",
	Port:            5432,
	SSLMode:         "disable",
	ConnMaxIdleTime: 5 * time.Minute,
	ConnMaxLifetime: 30 * time.Minute,
	MaxIdleConns:    5,
	MaxOpenConns:    25,
}

func (p *Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

func Load(path string) (*Config, error) {
	const op = "config.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
	}
	defer f.Close()

	var cfg Config
	setDefaults(&cfg)

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvDev, EnvStage, EnvProd:
	default:
		return fmt.Errorf("unknown env %q", c.Env)
	}

	if c.BaseURL == "" {
		return fmt.Errorf("base_url must not be empty")
	}

	if c.KeyLength <= 0 || c.SecretKeyLength <= 0 {
		return fmt.Errorf("key_length and secret_key_length must be positive")
	}

	if c.KeyLength > MaxKeyLength || c.SecretKeyLength > MaxKeyLength {
		return fmt.Errorf("key_length and secret_key_length must not exceed %d", MaxKeyLength)
	}

	return nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.BaseURL = "http://localhost:8080"
	cfg.KeyLength = 5
	cfg.SecretKeyLength = 8
	cfg.MaxRetries = 100
	cfg.MigrationsPath = "file://migrations"
	cfg.DocsPath = "./docs/swagger.yml"
	cfg.HTTPServer = defaultHTTPServer
	cfg.Postgres = defaultPostgres
}
