package utils

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type ServerConfig struct {
	Env         string
	Addr        string
	DBPath      string // empty means in-memory store
	UploadDir   string
	PublicURL   string
	CORSOrigins []string
}

// LoadServerConfig reads CARDVAULT_* env vars, falling back to dev defaults.
// A .env file in the working directory is honored when present.
func LoadServerConfig() ServerConfig {
	_ = godotenv.Load()

	cfg := ServerConfig{
		Env:       envOr("CARDVAULT_ENV", "development"),
		Addr:      envOr("CARDVAULT_ADDR", ":8080"),
		DBPath:    os.Getenv("CARDVAULT_DB_PATH"),
		UploadDir: envOr("CARDVAULT_UPLOAD_DIR", "uploads"),
		PublicURL: envOr("CARDVAULT_PUBLIC_URL", "http://localhost:8080"),
	}

	if raw := os.Getenv("CARDVAULT_CORS_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
