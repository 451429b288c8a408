package configs

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultAdminPassword = "admin123"
	DefaultSessionTTL    = 3600 * time.Second
	DefaultPort          = "3000"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is built once at startup and handed to every component.
type Config struct {
	Port string

	// ADMIN_PASSWORD is kept only as a bcrypt hash in memory.
	AdminPasswordHash   []byte
	AdminPasswordIsDflt bool

	SessionSecret       string
	SessionSecretIsDflt bool
	SessionTTL          time.Duration
	CookieSecure        bool

	DBDriver string
	DBDSN    string

	CertIDMode    string
	PublicBaseURL string
	QREmbedID     bool

	StaticDir   string
	CORSOrigins string
	LogLevel    string

	SessionCleanupInterval time.Duration
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") != "" {
		log.Info().Msg("🚀 Running in Railway, using system ENV")
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("⚠️ No .env file found, using system ENV")
	} else {
		log.Info().Msg("✅ .env file loaded")
	}
}

// Load reads .env (when present) and the process environment into a Config.
func Load() (*Config, error) {
	LoadEnv()

	cfg := &Config{
		Port:          GetEnv("PORT", DefaultPort),
		SessionTTL:    time.Duration(GetEnvInt("SESSION_TTL_SECONDS", int(DefaultSessionTTL/time.Second))) * time.Second,
		CookieSecure:  GetEnvBool("COOKIE_SECURE", false),
		DBDriver:      strings.ToLower(GetEnv("DB_DRIVER", DriverSQLite)),
		CertIDMode:    strings.ToLower(GetEnv("CERT_ID_MODE", "legacy")),
		PublicBaseURL: strings.TrimRight(GetEnv("PUBLIC_BASE_URL"), "/"),
		QREmbedID:     GetEnvBool("QR_EMBED_ID", false),
		StaticDir:     GetEnv("STATIC_DIR"),
		CORSOrigins:   GetEnv("CORS_ORIGINS", "*"),
		LogLevel:      GetEnv("LOG_LEVEL", "info"),

		SessionCleanupInterval: time.Duration(GetEnvInt("SESSION_CLEANUP_INTERVAL_MINUTES", 60)) * time.Minute,
	}

	adminPassword, ok := os.LookupEnv("ADMIN_PASSWORD")
	if !ok || adminPassword == "" {
		adminPassword = DefaultAdminPassword
		cfg.AdminPasswordIsDflt = true
	}
	if err := cfg.SetAdminPassword(adminPassword); err != nil {
		return nil, err
	}

	cfg.SessionSecret = strings.TrimSpace(GetEnv("SESSION_SECRET"))
	if cfg.SessionSecret == "" {
		secret, err := randomHex(16)
		if err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		cfg.SessionSecret = secret
		cfg.SessionSecretIsDflt = true
	}

	dsn, err := resolveDSN(cfg.DBDriver)
	if err != nil {
		return nil, err
	}
	cfg.DBDSN = dsn

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.AdminPasswordIsDflt {
		log.Warn().Msg("❌ ADMIN_PASSWORD not set, falling back to the built-in default")
	}
	if cfg.SessionSecretIsDflt {
		log.Warn().Msg("❌ SESSION_SECRET not set, sessions will not survive a restart")
	}
	return cfg, nil
}

// SetAdminPassword replaces the admin secret with its bcrypt hash.
func (c *Config) SetAdminPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	c.AdminPasswordHash = hash
	return nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.CertIDMode {
	case "legacy", "fixed":
	default:
		return fmt.Errorf("unsupported CERT_ID_MODE %q", c.CertIDMode)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_SECONDS must be positive")
	}
	if c.SessionCleanupInterval <= 0 {
		return fmt.Errorf("SESSION_CLEANUP_INTERVAL_MINUTES must be positive")
	}
	return nil
}

func GetEnv(key string, defaultValue ...string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer env, using default")
	}
	return def
}

func GetEnvBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Warn().Str("key", key).Str("value", v).Msg("invalid bool env, using default")
	}
	return def
}

// =======================
// DATABASE DSN
// =======================
func resolveDSN(driver string) (string, error) {
	if dsn := strings.TrimSpace(GetEnv("DATABASE_URL")); dsn != "" {
		return dsn, nil
	}
	if driver == DriverSQLite {
		return "certificates.db", nil
	}

	dbUser := GetEnv("DB_USER")
	dbHost := GetEnv("DB_HOST")
	dbName := GetEnv("DB_NAME")
	if dbUser == "" || dbHost == "" || dbName == "" {
		return "", fmt.Errorf("postgres needs DATABASE_URL or DB_USER/DB_HOST/DB_NAME")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=akcert&options=-c statement_timeout=3000",
		dbUser,
		GetEnv("DB_PASSWORD"),
		dbHost,
		GetEnv("DB_PORT", "5432"),
		dbName,
		GetEnv("DB_SSLMODE", "require"),
	), nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
