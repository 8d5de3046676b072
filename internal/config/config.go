package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	AppEnv      string
	ServerPort  int

	DBDriver    string
	DatabaseURL string

	SessionSecret      []byte
	SessionIdleTimeout time.Duration
	SessionMaxAge      time.Duration
	CookieSecure       bool

	AdminHandle   string
	AdminPassword string
	Seed          bool

	KafkaBrokers []string

	TemplatesDir string
	StaticDir    string

	LogLevel string
	LogFile  string
}

const devSessionSecret = "dev-session-secret-change-me"

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		ServiceName: EnvDefault("SERVICE_NAME", "silver_admin"),
		AppEnv:      EnvDefault("APP_ENV", "prod"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),

		DBDriver:    strings.ToLower(EnvDefault("DB_DRIVER", "sqlite")),
		DatabaseURL: EnvDefault("DATABASE_URL", "app.db"),

		SessionSecret:      []byte(os.Getenv("SESSION_SECRET")),
		SessionIdleTimeout: EnvDurationDefault("SESSION_IDLE_TIMEOUT", 24*time.Hour),
		SessionMaxAge:      EnvDurationDefault("SESSION_MAX_AGE", 7*24*time.Hour),
		CookieSecure:       EnvBoolDefault("COOKIE_SECURE", false),

		AdminHandle:   EnvDefault("ADMIN_HANDLE", "admin"),
		AdminPassword: EnvDefault("ADMIN_PASSWORD", "admin123"),
		Seed:          EnvBoolDefault("SEED", true),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		TemplatesDir: EnvDefault("TEMPLATES_DIR", "web/templates"),
		StaticDir:    EnvDefault("STATIC_DIR", "web/static"),

		LogLevel: EnvDefault("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
	}

	if len(cfg.SessionSecret) == 0 {
		if cfg.AppEnv != "dev" {
			return nil, fmt.Errorf("missing required env SESSION_SECRET")
		}
		cfg.SessionSecret = []byte(devSessionSecret)
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres", "pq":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.SessionIdleTimeout <= 0 || cfg.SessionMaxAge <= 0 {
		return nil, fmt.Errorf("session timeouts must be positive")
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
