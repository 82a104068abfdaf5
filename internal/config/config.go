package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yukikurage/project-tracker-api/internal/constants"
	"gopkg.in/yaml.v3"
)

// DefaultJWTSecret is the development signing secret. Release mode refuses it.
const DefaultJWTSecret = "default-secret-key-change-me"

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Upload   UploadConfig   `yaml:"upload"`
	CORS     CORSConfig     `yaml:"cors"`
	Log      LogConfig      `yaml:"log"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
}

type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                string `yaml:"port"`
	Mode                string `yaml:"mode"` // debug, release, test
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // sqlite, mysql, postgres
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	// DSN takes precedence over the individual fields when set.
	DSN string `yaml:"dsn"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	ExpireHour int    `yaml:"expire_hour"`
}

type UploadConfig struct {
	Dir      string `yaml:"dir"`
	MaxBytes int64  `yaml:"max_bytes"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in that order of precedence (last wins).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	cfg.overrideFromEnv()
	return cfg, nil
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                "8080",
			Mode:                "debug",
			ReadTimeoutSeconds:  15,
			WriteTimeoutSeconds: 30,
		},
		Database: DatabaseConfig{
			Driver:   "sqlite",
			Host:     "localhost",
			Port:     "3306",
			User:     "trackeruser",
			Password: "trackerpassword",
			Name:     "project_tracker",
		},
		JWT: JWTConfig{
			Secret:     DefaultJWTSecret,
			ExpireHour: int(constants.TokenTTL.Hours()),
		},
		Upload: UploadConfig{
			Dir:      "uploads",
			MaxBytes: constants.DefaultMaxUploadBytes,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"*"},
		},
		Log: LogConfig{
			Level: "info",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o",
		},
	}
}

func (c *Config) overrideFromEnv() {
	c.Server.Host = getEnv("SERVER_HOST", c.Server.Host)
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)
	c.Server.Mode = getEnv("GIN_MODE", c.Server.Mode)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnv("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.DSN = getEnv("DB_DSN", c.Database.DSN)

	c.JWT.Secret = getEnv("JWT_SECRET", c.JWT.Secret)
	c.JWT.ExpireHour = getEnvInt("JWT_EXPIRE_HOUR", c.JWT.ExpireHour)

	c.Upload.Dir = getEnv("UPLOAD_DIR", c.Upload.Dir)
	c.Upload.MaxBytes = int64(getEnvInt("UPLOAD_MAX_BYTES", int(c.Upload.MaxBytes)))

	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		c.CORS.AllowOrigins = splitAndTrim(origins)
	}

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)

	c.OpenAI.APIKey = getEnv("OPENAI_API_KEY", c.OpenAI.APIKey)
	c.OpenAI.Model = getEnv("OPENAI_MODEL", c.OpenAI.Model)
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is empty")
	}
	if c.Server.Mode == "release" && c.JWT.Secret == DefaultJWTSecret {
		return fmt.Errorf("jwt secret must be set (JWT_SECRET) in release mode")
	}
	if c.JWT.ExpireHour <= 0 {
		return fmt.Errorf("jwt expire hour must be positive, got %d", c.JWT.ExpireHour)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
