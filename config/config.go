package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	DB      DBConfig
	Redis   RedisConfig
	Form    FormConfig
	Session SessionConfig
}

type AppConfig struct {
	Port           string
	Env            string
	LogLevel       string
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// APIConfig points at the patientor backend that stores patients and entries
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// CatalogTTL is how long the diagnosis catalog stays cached
	CatalogTTL time.Duration
}

type FormConfig struct {
	NotificationDelay time.Duration
}

type SessionConfig struct {
	CookieName      string
	TTL             time.Duration
	CleanupInterval time.Duration
	SecureCookie    bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_REQUEST_TIMEOUT", "30s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("API_BASE_URL", "http://localhost:3001")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_CATALOG_TTL", "1h")
	v.SetDefault("FORM_NOTIFICATION_DELAY", "4s")
	v.SetDefault("SESSION_COOKIE_NAME", "patientor_session")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("SESSION_CLEANUP_INTERVAL", "5m")
	v.SetDefault("SESSION_SECURE_COOKIE", false)
}

// LoadConfig reads .env when present and lets environment variables override it
func LoadConfig() (*Config, error) {
	return load(viper.New(), ".env")
}

func load(v *viper.Viper, file string) (*Config, error) {
	setDefaults(v)
	v.SetConfigFile(file)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:           v.GetString("APP_PORT"),
			Env:            v.GetString("APP_ENV"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			RequestTimeout: v.GetDuration("APP_REQUEST_TIMEOUT"),
			CORSOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		API: APIConfig{
			BaseURL: v.GetString("API_BASE_URL"),
			Timeout: v.GetDuration("API_TIMEOUT"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Host:       v.GetString("REDIS_HOST"),
			Port:       v.GetString("REDIS_PORT"),
			Password:   v.GetString("REDIS_PASSWORD"),
			DB:         v.GetInt("REDIS_DB"),
			CatalogTTL: v.GetDuration("REDIS_CATALOG_TTL"),
		},
		Form: FormConfig{
			NotificationDelay: v.GetDuration("FORM_NOTIFICATION_DELAY"),
		},
		Session: SessionConfig{
			CookieName:      v.GetString("SESSION_COOKIE_NAME"),
			TTL:             v.GetDuration("SESSION_TTL"),
			CleanupInterval: v.GetDuration("SESSION_CLEANUP_INTERVAL"),
			SecureCookie:    v.GetBool("SESSION_SECURE_COOKIE"),
		},
	}

	return config, nil
}

// splitList reads a comma separated list, dropping blanks
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
