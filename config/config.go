package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etceter4/littlelemon/utils"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port            string        `yaml:"port"`
	GinMode         string        `yaml:"gin_mode"`
	LogLevel        string        `yaml:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	DB    Database `yaml:"database"`
	JWT   JWT      `yaml:"jwt"`
	HTTP  HTTP     `yaml:"http"`
	Admin Admin    `yaml:"admin"`
}

type Database struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type JWT struct {
	Secret     string        `yaml:"secret"`
	AccessTTL  time.Duration `yaml:"access_ttl"`
	RefreshTTL time.Duration `yaml:"refresh_ttl"`
}

// HTTP holds the middleware settings. A zero RateLimitRPS or AuthRateLimit
// disables the matching limiter.
type HTTP struct {
	CORSOrigins    []string `yaml:"cors_origins"`
	RateLimitRPS   float64  `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`
	AuthRateLimit  int      `yaml:"auth_rate_limit"`
}

// Admin is the superuser seeded at startup when both fields are set.
type Admin struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func Default() *Config {
	return &Config{
		Port:            "8080",
		GinMode:         "debug",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
		DB: Database{
			Driver: "sqlite",
			DSN:    "littlelemon.db",
		},
		JWT: JWT{
			Secret:     "littlelemon-dev-secret",
			AccessTTL:  5 * time.Minute,
			RefreshTTL: 24 * time.Hour,
		},
		HTTP: HTTP{
			CORSOrigins:    []string{"http://localhost:3000"},
			RateLimitRPS:   50,
			RateLimitBurst: 100,
			AuthRateLimit:  5,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE and finally the environment (including a .env file).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debugf("no .env file loaded: %v", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
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

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.Port = getEnv("APP_PORT", c.Port)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.DB.Driver = getEnv("DB_DRIVER", c.DB.Driver)
	c.DB.DSN = getEnv("DB_DSN", c.DB.DSN)
	c.JWT.Secret = getEnv("JWT_SECRET", c.JWT.Secret)
	c.Admin.Username = getEnv("ADMIN_USERNAME", c.Admin.Username)
	c.Admin.Password = getEnv("ADMIN_PASSWORD", c.Admin.Password)

	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		c.HTTP.CORSOrigins = splitList(v)
	}

	var err error
	if c.JWT.AccessTTL, err = getDuration("JWT_ACCESS_TTL", c.JWT.AccessTTL); err != nil {
		return err
	}
	if c.JWT.RefreshTTL, err = getDuration("JWT_REFRESH_TTL", c.JWT.RefreshTTL); err != nil {
		return err
	}
	if c.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("RATE_LIMIT_RPS"); ok {
		if c.HTTP.RateLimitRPS, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_RPS %q: %w", v, err)
		}
	}
	if v, ok := os.LookupEnv("RATE_LIMIT_BURST"); ok {
		if c.HTTP.RateLimitBurst, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_BURST %q: %w", v, err)
		}
	}
	if v, ok := os.LookupEnv("AUTH_RATE_LIMIT"); ok {
		if c.HTTP.AuthRateLimit, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid AUTH_RATE_LIMIT %q: %w", v, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
