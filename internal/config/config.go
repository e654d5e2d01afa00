package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"prod"`
	ErrorLogPath string `yaml:"error_log_path" env:"ERROR_LOG_PATH" env-default:"errors.log"`
	HTTPServer   `yaml:"http_server"`
	Access       `yaml:"access"`
	Session      `yaml:"session"`
	CORS         `yaml:"cors"`
	Export       `yaml:"export"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Access is the shared password gate. Empty password and hash disable it.
type Access struct {
	Password       string `yaml:"password" env:"ACCESS_PASSWORD"`
	PasswordHash   string `yaml:"password_hash" env:"ACCESS_PASSWORD_HASH"`
	LoginRateLimit int    `yaml:"login_rate_limit" env-default:"10"`
}

type Session struct {
	CookieName    string        `yaml:"cookie_name" env-default:"costing_session"`
	TTL           time.Duration `yaml:"ttl" env-default:"12h"`
	Secure        bool          `yaml:"secure" env-default:"false"`
	MaxSessions   int           `yaml:"max_sessions" env-default:"10000"`
	SweepInterval time.Duration `yaml:"sweep_interval" env-default:"1m"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173,http://localhost:8081"`
}

type Export struct {
	SheetName   string  `yaml:"sheet_name" env-default:"원가계산_리스트"`
	ColumnWidth float64 `yaml:"column_width" env-default:"15"`
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

// Load reads the yaml file at path; env variables override it.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}
