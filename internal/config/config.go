package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port               string
	StorePath          string
	DatabaseURL        string
	RedisAddr          string
	SessionSecret      string
	InstructorEmail    string
	InstructorPassword string
	Debug              bool
}

// fileConfig mirrors Config for the optional YAML config file.
// Environment variables always win over file values.
type fileConfig struct {
	Port               string `yaml:"port,omitempty"`
	StorePath          string `yaml:"store_path,omitempty"`
	DatabaseURL        string `yaml:"database_url,omitempty"`
	RedisAddr          string `yaml:"redis_addr,omitempty"`
	SessionSecret      string `yaml:"session_secret,omitempty"`
	InstructorEmail    string `yaml:"instructor_email,omitempty"`
	InstructorPassword string `yaml:"instructor_password,omitempty"`
	Debug              *bool  `yaml:"debug,omitempty"`
}

func Load() *Config {
	cfg := &Config{
		Port:               "3000",
		StorePath:          "lessonloop.json",
		SessionSecret:      "change-this-to-a-random-secret-in-production",
		InstructorEmail:    "instructor@lessonloop.test",
		InstructorPassword: "instructor123",
	}

	applyFile(cfg)

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.StorePath = getEnv("STORE_PATH", cfg.StorePath)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.SessionSecret = getEnv("SESSION_SECRET", cfg.SessionSecret)
	cfg.InstructorEmail = getEnv("INSTRUCTOR_EMAIL", cfg.InstructorEmail)
	cfg.InstructorPassword = getEnv("INSTRUCTOR_PASSWORD", cfg.InstructorPassword)
	cfg.Debug = getEnvBool("DEBUG", cfg.Debug)

	return cfg
}

// applyFile overlays values from the optional YAML config file.
// A missing or unreadable file is simply skipped.
func applyFile(cfg *Config) {
	data, err := os.ReadFile(configFilePath())
	if err != nil {
		return
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		log.Printf("Warning: ignoring malformed config file: %v", err)
		return
	}

	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.StorePath != "" {
		cfg.StorePath = fc.StorePath
	}
	if fc.DatabaseURL != "" {
		cfg.DatabaseURL = fc.DatabaseURL
	}
	if fc.RedisAddr != "" {
		cfg.RedisAddr = fc.RedisAddr
	}
	if fc.SessionSecret != "" {
		cfg.SessionSecret = fc.SessionSecret
	}
	if fc.InstructorEmail != "" {
		cfg.InstructorEmail = fc.InstructorEmail
	}
	if fc.InstructorPassword != "" {
		cfg.InstructorPassword = fc.InstructorPassword
	}
	if fc.Debug != nil {
		cfg.Debug = *fc.Debug
	}
}

func configFilePath() string {
	if path := os.Getenv("LESSONLOOP_CONFIG"); path != "" {
		return path
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "lessonloop", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lessonloop", "config.yaml")
}

// Debugf logs a formatted message only when DEBUG is enabled
func (c *Config) Debugf(format string, v ...interface{}) {
	if c.Debug {
		log.Printf("[DEBUG] "+format, v...)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
