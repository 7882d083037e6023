package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Rules    RulesConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	// DiagnosisTTLSeconds bounds how long a cached funnel diagnosis stays fresh.
	DiagnosisTTLSeconds int
}

type RulesConfig struct {
	// Dir holds the YAML rule files (guardrails, commission, scoring,
	// reasons, funnel_rules).
	Dir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "CPS Growth API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8081"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "cps_growth"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:           getEnv("REDIS_HOST", "localhost"),
			RedisPort:           getEnv("REDIS_PORT", "6379"),
			RedisPassword:       getEnv("REDIS_PASSWORD", ""),
			RedisDB:             getEnvInt("REDIS_DB", 0),
			DiagnosisTTLSeconds: getEnvInt("REDIS_DIAGNOSIS_TTL_SECONDS", 300),
		},
		Rules: RulesConfig{
			Dir: getEnv("RULES_CONFIG_DIR", "configs"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return n
}
