package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":3000", c.EndpointAddrHTTP)
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, StoreMongo, c.StoreKind)
	assert.Equal(t, "mongodb://localhost:27017", c.MongoURI)
	assert.Equal(t, "TodoApp", c.MongoDatabase)
	assert.Equal(t, "abc123", c.SecretKey)
	assert.Equal(t, time.Duration(0), c.TokenValidityDuration)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, OwnershipLegacy, c.OwnershipMode)
	assert.Equal(t, []string{"http://localhost:5173"}, c.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Second, c.HealthCheckInterval)
	assert.False(t, c.StrictOwnership())
	assert.NoError(t, c.Validate())
}

func TestLoad_UsesDefaultsWithoutSources(t *testing.T) {
	c := load(nil)
	require.NotNil(t, c)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
}

func TestLoad_Precedence(t *testing.T) {
	t.Setenv("HTTP_ADDRESS", ":7000")
	t.Setenv("STORE", StorePostgres)
	t.Setenv("JWT_SECRET", "from-env")

	path := writeTempJSON(t, "", "", map[string]any{
		"secret_key": "from-json",
		"log_level":  "debug",
	})

	c := load([]string{"-c", path, "-s", "from-flag"})

	assert.Equal(t, ":7000", c.EndpointAddrHTTP)
	assert.Equal(t, StorePostgres, c.StoreKind)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "from-flag", c.SecretKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "memory store", mutate: func(c *Config) { c.StoreKind = StoreMemory; c.MongoURI = "" }},
		{name: "empty secret", mutate: func(c *Config) { c.SecretKey = "" }, wantErr: "secret key is required"},
		{name: "empty http addr", mutate: func(c *Config) { c.EndpointAddrHTTP = "" }, wantErr: "http address is required"},
		{name: "negative validity", mutate: func(c *Config) { c.TokenValidityDuration = -time.Second }, wantErr: "must not be negative"},
		{name: "default bcrypt cost", mutate: func(c *Config) { c.BcryptCost = 0 }},
		{name: "bcrypt cost too high", mutate: func(c *Config) { c.BcryptCost = 40 }, wantErr: "bcrypt cost 40 is outside 4..31"},
		{name: "bcrypt cost too low", mutate: func(c *Config) { c.BcryptCost = 2 }, wantErr: "bcrypt cost 2 is outside"},
		{name: "unknown ownership", mutate: func(c *Config) { c.OwnershipMode = "open" }, wantErr: `unknown ownership mode "open"`},
		{name: "unknown store", mutate: func(c *Config) { c.StoreKind = "redis" }, wantErr: `unknown store "redis"`},
		{name: "mongo without uri", mutate: func(c *Config) { c.MongoURI = "" }, wantErr: "mongo store needs"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.StoreKind = StorePostgres; c.DatabaseDSN = "" }, wantErr: "postgres store needs"},
		{name: "firestore without project", mutate: func(c *Config) { c.StoreKind = StoreFirestore }, wantErr: "firestore store needs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Config
			c.LoadDefaults()
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestStrictOwnership(t *testing.T) {
	c := Config{OwnershipMode: OwnershipStrict}
	assert.True(t, c.StrictOwnership())
}
