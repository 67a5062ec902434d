package config

import (
	"testing"
	"time"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"JWT_SECRET": "s3cret"}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "4000" {
		t.Errorf("port = %q, want 4000", cfg.Port)
	}
	if cfg.StoreDriver != DriverPostgres {
		t.Errorf("driver = %q", cfg.StoreDriver)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("ttl = %v, want 1h", cfg.TokenTTL)
	}
	if cfg.PublicBaseURL != "http://localhost:4000" {
		t.Errorf("base url = %q", cfg.PublicBaseURL)
	}
	if cfg.UploadDir != "./upload/images" {
		t.Errorf("upload dir = %q", cfg.UploadDir)
	}
	if cfg.DatabaseURL == "" {
		t.Error("expected a postgres DSN to be assembled")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"JWT_SECRET":      "x",
		"PORT":            "9000",
		"STORE_DRIVER":    "MEMORY",
		"TOKEN_TTL":       "30m",
		"PUBLIC_BASE_URL": "https://shop.example.com/",
		"BACKUP_HOUR":     "5",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.StoreDriver != DriverMemory {
		t.Errorf("driver = %q", cfg.StoreDriver)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Errorf("ttl = %v", cfg.TokenTTL)
	}
	if cfg.PublicBaseURL != "https://shop.example.com" {
		t.Errorf("base url = %q", cfg.PublicBaseURL)
	}
	if cfg.BackupHour != 5 {
		t.Errorf("backup hour = %d", cfg.BackupHour)
	}
}

func TestFromEnvErrors(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret": {},
		"bad ttl":        {"JWT_SECRET": "x", "TOKEN_TTL": "soon"},
		"bad hour":       {"JWT_SECRET": "x", "BACKUP_HOUR": "25"},
		"bad driver":     {"JWT_SECRET": "x", "STORE_DRIVER": "sqlite"},
		"mongo no url":   {"JWT_SECRET": "x", "STORE_DRIVER": "mongo"},
		"mongo bad url":  {"JWT_SECRET": "x", "STORE_DRIVER": "mongo", "DB_URL": "localhost:27017"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := FromEnv(envOf(env)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestMongoDatabaseName(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"from url path", map[string]string{"DB_URL": "mongodb://localhost:27017/e-commerce"}, "e-commerce"},
		{"url with options", map[string]string{"DB_URL": "mongodb://u:p@db1:27017,db2:27017/shop?replicaSet=rs0"}, "shop"},
		{"explicit name wins", map[string]string{"DB_URL": "mongodb://localhost:27017/e-commerce", "DB_NAME": "other"}, "other"},
		{"default", map[string]string{"DB_URL": "mongodb://localhost:27017"}, "ecommerce"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.env["JWT_SECRET"] = "x"
			tc.env["STORE_DRIVER"] = "mongo"
			cfg, err := FromEnv(envOf(tc.env))
			if err != nil {
				t.Fatalf("FromEnv: %v", err)
			}
			if cfg.MongoDatabase != tc.want {
				t.Errorf("database = %q, want %q", cfg.MongoDatabase, tc.want)
			}
		})
	}
}
