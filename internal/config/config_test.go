package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "catalogo.db", cfg.SQLitePath)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, 600, cfg.RateLimitPerMinute)
	assert.Equal(t, 3*time.Second, cfg.RedisPingTimeout)
}

func TestLoadEnvSobrescribe(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
}

func TestLoadArchivoExplicito(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "catalogo.env")
	require.NoError(t, os.WriteFile(path, []byte("SQLITE_PATH=/tmp/otro.db\nCACHE_TTL_SECONDS=60\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/otro.db", cfg.SQLitePath)
	assert.Equal(t, time.Minute, cfg.CacheTTL())
}

func TestLoadArchivoExplicitoInexistente(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "no-existe.env"))
	assert.Error(t, err)
}

func TestLoadDriverInvalido(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load("")
	assert.ErrorContains(t, err, "DB_DRIVER")
}

func TestLoadRedisPingTimeout(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("REDIS_PING_TIMEOUT", "250ms")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.RedisPingTimeout)

	t.Setenv("REDIS_PING_TIMEOUT", "0s")
	_, err = Load("")
	assert.ErrorContains(t, err, "REDIS_PING_TIMEOUT")
}

// chdir cambia el directorio de trabajo y lo restaura al terminar el test
// (equivalente a testing.T.Chdir, disponible recien en Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
