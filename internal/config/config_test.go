package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "resume-analyzer")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
}

func TestFromEnv_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")

	_, err := FromEnv()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMissingRequiredEnv))
	assert.Contains(t, err.Error(), "APP_NAME, APP_ENV, HTTP_PORT")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{"UPLOAD_DIR", "UPLOAD_MAX_BYTES", "MODEL_TREES", "MODEL_SEED", "MODEL_WORKERS", "DB_HOST", "REDIS_HOST", "ARCHIVE_BUCKET", "ADMIN_JWT_SECRET", "CACHE_TTL_SECONDS"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, ModelConfig{Trees: 100, Seed: 0, Workers: 4}, cfg.Model)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.Database.Enabled())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Archive.Enabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("MODEL_TREES", "50")
	t.Setenv("MODEL_SEED", "42")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "resumes")
	t.Setenv("DB_USER", "app")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("CACHE_TTL_SECONDS", "30")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Model.Trees)
	assert.Equal(t, uint64(42), cfg.Model.Seed)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, "5432", cfg.Database.DBPort)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "non numeric trees", key: "MODEL_TREES", val: "many"},
		{name: "zero trees", key: "MODEL_TREES", val: "0"},
		{name: "non numeric port", key: "HTTP_PORT", val: "http"},
		{name: "negative upload limit", key: "UPLOAD_MAX_BYTES", val: "-1"},
		{name: "short jwt secret", key: "ADMIN_JWT_SECRET", val: "short"},
		{name: "db without name", key: "DB_HOST", val: "localhost"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv("DB_NAME", "")
			t.Setenv("DB_USER", "")
			t.Setenv(tc.key, tc.val)

			_, err := FromEnv()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errInvalidEnv))
		})
	}
}
