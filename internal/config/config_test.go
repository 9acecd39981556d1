package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	return &Config{
		Port:      "8375",
		Env:       "test",
		JWTSecret: "secure-secret-at-least-32-chars-long!!",
		DBDriver:  "sqlite",
		DBPath:    "chirp.db",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Valid sqlite", func(c *Config) {}, ""},
		{
			"Valid postgres",
			func(c *Config) {
				c.DBDriver = "postgres"
				c.DBHost = "localhost"
				c.DBName = "chirp"
			},
			"",
		},
		{"Missing port", func(c *Config) { c.Port = "" }, "PORT is required"},
		{"Missing JWT secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"Unknown driver", func(c *Config) { c.DBDriver = "mysql" }, "unsupported DB_DRIVER"},
		{
			"Sqlite without path",
			func(c *Config) { c.DBPath = "" },
			"DB_PATH is required",
		},
		{
			"Production default secret",
			func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "your-secret-key-change-in-production"
			},
			"must be changed from the default",
		},
		{
			"Production short secret",
			func(c *Config) {
				c.Env = "production"
				c.JWTSecret = "too-short"
			},
			"at least 32 characters",
		},
		{
			"Production postgres default password",
			func(c *Config) {
				c.Env = "production"
				c.DBDriver = "postgres"
				c.DBPassword = "password"
			},
			"strong DB_PASSWORD",
		},
		{
			"Prod alias is treated as production",
			func(c *Config) {
				c.Env = "prod"
				c.JWTSecret = "too-short"
			},
			"at least 32 characters",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c := validTestConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr),
				"error %q should contain %q", err, tt.wantErr)
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "8375", c.Port)
	assert.Equal(t, "test", c.Env)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "chirp.db", c.DBPath)
	assert.Equal(t, "static/uploads", c.UploadDir)
	assert.Equal(t, "/static", c.StaticBaseURL)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9999")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "9999", c.Port)
	assert.Equal(t, "postgres", c.DBDriver)
	assert.Equal(t, "db.internal", c.DBHost)
}
