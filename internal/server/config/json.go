package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/mindkeeper/internal/flagx"
	"github.com/dmitrijs2005/mindkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the server config. Durations accept
// "1m" style strings or integer nanoseconds. Pointer fields distinguish
// "absent" from an explicit zero value.
type JsonConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	EndpointAddrMetrics          *string        `json:"endpoint_addr_metrics"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	LookbackDays                 *int           `json:"lookback_days"`
	ListenNotifications          *bool          `json:"listen_notifications"`
	PreferencesCacheSize         *int           `json:"preferences_cache_size"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
}

// parseJson overlays the file named by -c/-config onto config. Only keys
// present in the file are applied. A missing flag means no file; an
// unreadable or invalid file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setStr(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	if c.EndpointAddrMetrics != nil {
		config.EndpointAddrMetrics = *c.EndpointAddrMetrics
	}
	setStr(&config.DatabaseDSN, c.DatabaseDSN)
	setStr(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.LookbackDays != nil {
		config.LookbackDays = *c.LookbackDays
	}
	if c.ListenNotifications != nil {
		config.ListenNotifications = *c.ListenNotifications
	}
	if c.PreferencesCacheSize != nil {
		config.PreferencesCacheSize = *c.PreferencesCacheSize
	}
	setStr(&config.S3RootUser, c.S3RootUser)
	setStr(&config.S3RootPassword, c.S3RootPassword)
	setStr(&config.S3Bucket, c.S3Bucket)
	setStr(&config.S3Region, c.S3Region)
	setStr(&config.S3BaseEndpoint, c.S3BaseEndpoint)
}
