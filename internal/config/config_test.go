package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViperDefaults(t *testing.T) {
	cfg := FromViper(newViper())

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, StoreMongo, cfg.Store)
	assert.Equal(t, "mentora", cfg.DBName)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "https://ik.imagekit.io/jakariya", cfg.ImageKit.URLEndpoint)
	assert.False(t, cfg.IsProduction())
}

func TestFromViperEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE", "MEMORY")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("ENV", "production")

	cfg := FromViper(newViper())

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	valid := Config{Store: StoreMongo, MongoURI: "mongodb://localhost", FirebaseKeyData: "{}", RequestTimeout: time.Second}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing mongo uri", func(c *Config) { c.MongoURI = "" }, "MONGODB_URI"},
		{"unknown store", func(c *Config) { c.Store = "redis" }, "unknown STORE"},
		{"missing firebase key", func(c *Config) { c.FirebaseKeyData = "" }, "KEY_DATA"},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, "REQUEST_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	memory := Config{Store: StoreMemory, FirebaseKeyData: "{}", RequestTimeout: time.Second}
	assert.NoError(t, memory.Validate())
}
