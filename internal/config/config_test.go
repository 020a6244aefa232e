package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:          "development",
		Port:         "8375",
		JWTSecret:    "secure-secret-at-least-32-chars-long",
		BcryptCost:   10,
		DBDriver:     "postgres",
		DBSchemaMode: "auto",
		DBSSLMode:    "disable",
		DBPassword:   "secure-password",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"negative token ttl", func(c *Config) { c.TokenTTL = -time.Minute }, true},
		{"bcrypt cost too low", func(c *Config) { c.BcryptCost = 2 }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"sqlite driver", func(c *Config) { c.DBDriver = "sqlite" }, false},
		{"sql schema mode on sqlite", func(c *Config) { c.DBDriver = "sqlite"; c.DBSchemaMode = "sql" }, true},
		{"unknown schema mode", func(c *Config) { c.DBSchemaMode = "magic" }, true},
		{"short secret outside production", func(c *Config) { c.JWTSecret = "short" }, false},
		{"production placeholder secret", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
			c.JWTSecret = placeholderJWTSecret
		}, true},
		{"production short secret", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
			c.JWTSecret = "short"
		}, true},
		{"production weak db password", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
			c.DBPassword = "password"
		}, true},
		{"production sqlite skips db password", func(c *Config) {
			c.Env = "prod"
			c.DBDriver = "sqlite"
			c.DBPassword = ""
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_NormalizeSchemaMode(t *testing.T) {
	prod := &Config{Env: "production", DBDriver: " Postgres "}
	prod.normalize()
	assert.Equal(t, "postgres", prod.DBDriver)
	assert.Equal(t, "sql", prod.DBSchemaMode)

	dev := &Config{Env: "development", DBDriver: "postgres"}
	dev.normalize()
	assert.Equal(t, "auto", dev.DBSchemaMode)

	explicit := &Config{Env: "production", DBDriver: "postgres", DBSchemaMode: "NONE"}
	explicit.normalize()
	assert.Equal(t, "none", explicit.DBSchemaMode)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	defer viper.Reset()
	for k, v := range map[string]string{
		"APP_ENV":                   "development",
		"DB_SSLMODE":                "  DISABLE  ",
		"DB_DRIVER":                 "sqlite",
		"TOKEN_TTL":                 "24h",
		"ENFORCE_TOKEN_FINGERPRINT": "true",
		"JWT_SECRET":                "env-secret-at-least-32-characters-long",
	} {
		require.NoError(t, os.Setenv(k, v))
		defer os.Unsetenv(k)
	}

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "auto", c.DBSchemaMode)
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
	assert.True(t, c.EnforceTokenFingerprint)
	assert.Equal(t, "8375", c.Port)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "env-secret-at-least-32-characters-long", c.JWTSecret)
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	defer viper.Reset()
	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "sqlite")
	prev, had := os.LookupEnv("JWT_SECRET")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))
	if had {
		defer os.Setenv("JWT_SECRET", prev)
	}

	c, err := LoadConfig()
	require.Error(t, err)
	assert.Nil(t, c)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}
