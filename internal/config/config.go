package config // package config loads application configuration from environment variables

import (
	"os"
	"strconv"

	"go.uber.org/zap"
)

// Development fallbacks for the signing secrets. Running with these is a
// deployment risk; Load logs a warning whenever one of them is in effect.
const (
	devClientSecret = "dev-client-secret-change-me"
	devAdminSecret  = "dev-admin-secret-change-me"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. DATABASE_URL is the only hard requirement; the
// JWT secrets fall back to insecure development values so that a local
// checkout runs without any setup.
type Config struct {
	Env            string // application environment (e.g. "dev", "production")
	Port           string // HTTP port to listen on
	DatabaseURL    string // MySQL DSN, e.g. user:pass@tcp(host:3306)/dbname
	JWTSecret      string // secret signing client-portal tokens
	AdminJWTSecret string // secret signing admin tokens
	BcryptCost     int    // bcrypt cost for password hashing
	AdminEmail     string // seeded admin account email
	AdminPassword  string // seeded admin account password
}

// Load reads configuration from the environment. A missing DATABASE_URL is
// fatal; every other value has a default.
func Load(log *zap.Logger) Config {
	cfg := Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecret:      getenv("JWT_SECRET", devClientSecret),
		AdminJWTSecret: getenv("ADMIN_JWT_SECRET", devAdminSecret),
		BcryptCost:     envInt("BCRYPT_COST", 10),
		AdminEmail:     getenv("ADMIN_EMAIL", "admin@kadrfilm.pl"),
		AdminPassword:  getenv("ADMIN_PASSWORD", "admin123"),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("missing required env var: DATABASE_URL")
	}
	if cfg.JWTSecret == devClientSecret {
		log.Warn("JWT_SECRET not set, using insecure development secret")
	}
	if cfg.AdminJWTSecret == devAdminSecret {
		log.Warn("ADMIN_JWT_SECRET not set, using insecure development secret")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		log.Warn("BCRYPT_COST out of range, falling back to 10", zap.Int("cost", cfg.BcryptCost))
		cfg.BcryptCost = 10
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}
