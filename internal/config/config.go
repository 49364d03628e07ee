package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tasks_api/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort   string
	APIPrefix string
	GinMode   string
	Version   string

	// Database. DatabaseURL wins over the individual parts when set.
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBName      string
	DBPassword  string
	DBPort      int
	DBMaxConns  int32

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit  int
	APIRateWindow time.Duration

	LogLevel       string
	LogJSON        bool
	AllowedOrigins []string
}

// Load reads the configuration from the environment (and .env if present).
func Load() *Config {
	cfg, err := load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	return cfg
}

func load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("API_PREFIX", "/api")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("APP_VERSION", "dev")

	// DB_* first, then the bare names older deployments use in their .env
	_ = v.BindEnv("DB_HOST", "DB_HOST", "HOST")
	_ = v.BindEnv("DB_USER", "DB_USER", "USER")
	_ = v.BindEnv("DB_NAME", "DB_NAME", "DATABASE")
	_ = v.BindEnv("DB_PASSWORD", "DB_PASSWORD", "PASSWORD")
	_ = v.BindEnv("DB_PORT", "DB_PORT", "PORT")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_PORT", "6543")
	v.SetDefault("DB_MAX_CONNS", 10)

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("API_RATE_LIMIT", 0)
	v.SetDefault("API_RATE_WINDOW_SECONDS", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_JSON", false)

	dbPort, err := strconv.Atoi(strings.TrimSpace(v.GetString("DB_PORT")))
	if err != nil || dbPort <= 0 || dbPort > 65535 {
		return nil, fmt.Errorf("DB_PORT must be a valid port, got %q", v.GetString("DB_PORT"))
	}

	maxConns := v.GetInt("DB_MAX_CONNS")
	if maxConns <= 0 {
		maxConns = 10
	}

	window := v.GetInt("API_RATE_WINDOW_SECONDS")
	if window <= 0 {
		window = 60
	}

	prefix := "/" + strings.Trim(v.GetString("API_PREFIX"), "/")

	var origins []string
	for _, o := range strings.Split(v.GetString("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		AppPort:        v.GetString("APP_PORT"),
		APIPrefix:      prefix,
		GinMode:        v.GetString("GIN_MODE"),
		Version:        v.GetString("APP_VERSION"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBHost:         v.GetString("DB_HOST"),
		DBUser:         v.GetString("DB_USER"),
		DBName:         v.GetString("DB_NAME"),
		DBPassword:     v.GetString("DB_PASSWORD"),
		DBPort:         dbPort,
		DBMaxConns:     int32(maxConns),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		APIRateLimit:   v.GetInt("API_RATE_LIMIT"),
		APIRateWindow:  time.Duration(window) * time.Second,
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogJSON:        v.GetBool("LOG_JSON"),
		AllowedOrigins: origins,
	}, nil
}

// DSN returns the connection string handed to pgxpool.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:   "/" + c.DBName,
	}
	if c.DBPassword != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPassword)
	} else {
		u.User = url.User(c.DBUser)
	}
	return u.String()
}
