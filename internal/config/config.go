package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backend modes. The mode is chosen once at startup and the resulting
// backend is injected into the router.
const (
	BackendMock     = "mock"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Settings store kinds.
const (
	SettingsMemory = "memory"
	SettingsDB     = "db"
	SettingsRedis  = "redis"
	SettingsBadger = "badger"
)

type Config struct {
	HTTPPort      string
	Backend       string
	DatabaseURL   string
	SQLitePath    string
	JWTSecret     string
	JWTTTL        time.Duration
	SettingsStore string
	RedisAddr     string
	BadgerPath    string
	AIProvider    string
	DeepSeekKey   string
	GeminiKey     string
	LogLevel      string
	AdminEmail    string
	AdminPassword string
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("BACKEND", BackendMock)
	v.SetDefault("SQLITE_PATH", "pilana.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRES_IN", "24h")
	v.SetDefault("SETTINGS_STORE", SettingsMemory)
	v.SetDefault("BADGER_PATH", "data/settings")
	v.SetDefault("AI_PROVIDER", "deepseek")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ADMIN_EMAIL", "admin@test.com")
	return v
}

func FromViper(v *viper.Viper) (Config, error) {
	ttl, err := time.ParseDuration(v.GetString("JWT_EXPIRES_IN"))
	if err != nil {
		return Config{}, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	c := Config{
		HTTPPort:      v.GetString("HTTP_PORT"),
		Backend:       strings.ToLower(v.GetString("BACKEND")),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTTTL:        ttl,
		SettingsStore: strings.ToLower(v.GetString("SETTINGS_STORE")),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		BadgerPath:    v.GetString("BADGER_PATH"),
		AIProvider:    strings.ToLower(v.GetString("AI_PROVIDER")),
		DeepSeekKey:   v.GetString("DEEPSEEK_API_KEY"),
		GeminiKey:     v.GetString("GEMINI_API_KEY"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendMock, BackendSQLite:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown BACKEND %q", c.Backend)
	}
	switch c.SettingsStore {
	case SettingsMemory, SettingsDB, SettingsBadger:
	case SettingsRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("SETTINGS_STORE=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown SETTINGS_STORE %q", c.SettingsStore)
	}
	if c.SettingsStore == SettingsDB && c.Backend == BackendMock {
		return fmt.Errorf("SETTINGS_STORE=db needs a database backend")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is empty")
	}
	return nil
}
