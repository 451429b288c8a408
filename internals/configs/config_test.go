package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "ADMIN_PASSWORD", "SESSION_SECRET", "SESSION_TTL_SECONDS", "COOKIE_SECURE",
		"DB_DRIVER", "DATABASE_URL", "DB_USER", "DB_HOST", "DB_NAME", "CERT_ID_MODE",
		"PUBLIC_BASE_URL", "QR_EMBED_ID", "STATIC_DIR", "CORS_ORIGINS", "LOG_LEVEL",
		"SESSION_CLEANUP_INTERVAL_MINUTES",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("RAILWAY_ENVIRONMENT", "test")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "certificates.db", cfg.DBDSN)
	assert.Equal(t, "legacy", cfg.CertIDMode)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Hour, cfg.SessionCleanupInterval)
	assert.False(t, cfg.QREmbedID)
	assert.False(t, cfg.CookieSecure)

	assert.True(t, cfg.AdminPasswordIsDflt)
	assert.NoError(t, bcrypt.CompareHashAndPassword(cfg.AdminPasswordHash, []byte(DefaultAdminPassword)))

	assert.True(t, cfg.SessionSecretIsDflt)
	assert.Len(t, cfg.SessionSecret, 32)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
	t.Setenv("SESSION_SECRET", "signing-secret")
	t.Setenv("SESSION_TTL_SECONDS", "120")
	t.Setenv("CERT_ID_MODE", "FIXED")
	t.Setenv("PUBLIC_BASE_URL", "https://verify.example.org/")
	t.Setenv("QR_EMBED_ID", "true")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_USER", "akcert")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "certs")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.AdminPasswordIsDflt)
	assert.NoError(t, bcrypt.CompareHashAndPassword(cfg.AdminPasswordHash, []byte("hunter2")))
	assert.Equal(t, "signing-secret", cfg.SessionSecret)
	assert.False(t, cfg.SessionSecretIsDflt)
	assert.Equal(t, 2*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "fixed", cfg.CertIDMode)
	assert.Equal(t, "https://verify.example.org", cfg.PublicBaseURL)
	assert.True(t, cfg.QREmbedID)
	assert.Contains(t, cfg.DBDSN, "postgres://akcert:pw@db.internal:5432/certs")
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"driver":   {"DB_DRIVER", "mysql"},
		"id mode":  {"CERT_ID_MODE", "uuid"},
		"ttl":      {"SESSION_TTL_SECONDS", "0"},
		"interval": {"SESSION_CLEANUP_INTERVAL_MINUTES", "-5"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestPostgresNeedsConnectionDetails(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.DBDSN)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("AKCERT_INT", "42")
	t.Setenv("AKCERT_BAD_INT", "forty-two")
	t.Setenv("AKCERT_BOOL", "1")

	assert.Equal(t, 42, GetEnvInt("AKCERT_INT", 7))
	assert.Equal(t, 7, GetEnvInt("AKCERT_BAD_INT", 7))
	assert.Equal(t, 7, GetEnvInt("AKCERT_UNSET_INT", 7))
	assert.True(t, GetEnvBool("AKCERT_BOOL", false))
	assert.Equal(t, "fallback", GetEnv("AKCERT_UNSET", "fallback"))
}
