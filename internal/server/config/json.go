package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/todoapi/internal/flagx"
	"github.com/dmitrijs2005/todoapi/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations accept
// either "15m"-style strings or integer nanoseconds. Absent fields leave the
// current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC      string          `json:"endpoint_addr_grpc"`
	StoreKind             string          `json:"store"`
	MongoURI              string          `json:"mongodb_uri"`
	MongoDatabase         string          `json:"mongodb_database"`
	DatabaseDSN           string          `json:"database_dsn"`
	FirestoreProjectID    string          `json:"firestore_project"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	BcryptCost            int             `json:"bcrypt_cost"`
	OwnershipMode         string          `json:"ownership_mode"`
	CORSAllowedOrigins    []string        `json:"cors_allowed_origins"`
	GinMode               string          `json:"gin_mode"`
	LogLevel              string          `json:"log_level"`
	HealthCheckInterval   *timex.Duration `json:"health_check_interval"`
}

// parseJson overlays Config with the file named by -c / -config, if any.
// Unreadable or malformed files panic.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.EndpointAddrHTTP, jc.EndpointAddrHTTP)
	setString(&cfg.EndpointAddrGRPC, jc.EndpointAddrGRPC)
	setString(&cfg.StoreKind, jc.StoreKind)
	setString(&cfg.MongoURI, jc.MongoURI)
	setString(&cfg.MongoDatabase, jc.MongoDatabase)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.FirestoreProjectID, jc.FirestoreProjectID)
	setString(&cfg.SecretKey, jc.SecretKey)
	setString(&cfg.OwnershipMode, jc.OwnershipMode)
	setString(&cfg.GinMode, jc.GinMode)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.TokenValidityDuration != nil {
		cfg.TokenValidityDuration = jc.TokenValidityDuration.Duration
	}
	if jc.HealthCheckInterval != nil {
		cfg.HealthCheckInterval = jc.HealthCheckInterval.Duration
	}
	if jc.BcryptCost != 0 {
		cfg.BcryptCost = jc.BcryptCost
	}
	if len(jc.CORSAllowedOrigins) > 0 {
		cfg.CORSAllowedOrigins = jc.CORSAllowedOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
