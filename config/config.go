package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port          string
	StoreDriver   string
	DatabaseURL   string // postgres DSN
	MongoURL      string
	MongoDatabase string

	JWTSecret string
	TokenTTL  time.Duration

	UploadDir     string
	PublicBaseURL string
	AdminAPIKey   string

	BackupDir       string
	BackupHour      int
	BackupRetention time.Duration
}

// Load reads the process environment, after merging in a .env file when one
// is present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from an environment lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:          get("PORT", "4000"),
		StoreDriver:   strings.ToLower(get("STORE_DRIVER", DriverPostgres)),
		MongoURL:      get("DB_URL", ""),
		MongoDatabase: get("DB_NAME", ""),
		JWTSecret:     getenv("JWT_SECRET"),
		UploadDir:     get("UPLOAD_DIR", "./upload/images"),
		AdminAPIKey:   getenv("ADMIN_API_KEY"),
		BackupDir:     get("BACKUP_DIR", ""),
	}
	cfg.PublicBaseURL = strings.TrimRight(get("PUBLIC_BASE_URL", "http://localhost:"+cfg.Port), "/")
	cfg.DatabaseURL = get("DATABASE_URL", "")
	if cfg.DatabaseURL == "" && cfg.StoreDriver == DriverPostgres {
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			get("DB_HOST", "localhost"), getenv("DB_USER"), getenv("DB_PASSWORD"),
			get("DB_NAME", "ecommerce"), get("DB_PORT", "5432"),
		)
	}

	// A database in the DB_URL path wins over the default name.
	if cfg.MongoDatabase == "" && cfg.StoreDriver == DriverMongo && cfg.MongoURL != "" {
		cs, err := connstring.ParseAndValidate(cfg.MongoURL)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_URL: %w", err)
		}
		cfg.MongoDatabase = cs.Database
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "ecommerce"
	}

	var err error
	if cfg.TokenTTL, err = time.ParseDuration(get("TOKEN_TTL", "1h")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.BackupRetention, err = time.ParseDuration(get("BACKUP_RETENTION", "96h")); err != nil {
		return nil, fmt.Errorf("invalid BACKUP_RETENTION: %w", err)
	}
	if cfg.BackupHour, err = strconv.Atoi(get("BACKUP_HOUR", "2")); err != nil || cfg.BackupHour < 0 || cfg.BackupHour > 23 {
		return nil, errors.New("invalid BACKUP_HOUR: must be 0-23")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	switch c.StoreDriver {
	case DriverPostgres:
	case DriverMongo:
		if c.MongoURL == "" {
			return errors.New("DB_URL is required for the mongo store")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}
