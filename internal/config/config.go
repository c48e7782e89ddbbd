package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort          = "8080"
	DefaultAdminPassword = "admin123"
	DefaultStoragePath   = "data/invite-codes.json"
	DefaultQuizID        = "default"
)

type Config struct {
	Env    string `yaml:"env" env:"APP_ENV"`
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
	} `yaml:"server"`
	Admin struct {
		Password string `yaml:"password" env:"ADMIN_PASSWORD"`
	} `yaml:"admin"`
	Storage struct {
		Path string `yaml:"path" env:"STORAGE_PATH"`
	} `yaml:"storage"`
	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		TTL      string `yaml:"ttl" env:"REDIS_TTL"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url" env:"POSTGRES_URL"`
	} `yaml:"postgres"`
	Quiz struct {
		ID  string `yaml:"id" env:"QUIZ_ID"`
		TTL string `yaml:"ttl" env:"QUIZ_TTL"`
	} `yaml:"quiz"`
	Log struct {
		Path string `yaml:"path" env:"LOG_PATH"`
	} `yaml:"log"`
}

// Load reads YAML config from path and applies environment overrides.
// A missing file is not an error; defaults and environment still apply.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	case !os.IsNotExist(err):
		return cfg, err
	}
	if err := cleanenv.UpdateEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Env == "" {
		c.Env = "local"
	}
	if c.Admin.Password == "" {
		c.Admin.Password = DefaultAdminPassword
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultStoragePath
	}
	if c.Quiz.ID == "" {
		c.Quiz.ID = DefaultQuizID
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
