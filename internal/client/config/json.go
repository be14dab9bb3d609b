package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/flagx"
	"github.com/dmitrijs2005/mindkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the CLI config file. Intervals accept
// either strings like "3s" or integer nanoseconds. Absent keys leave the
// current value alone.
type JsonConfig struct {
	ServerEndpointAddr  *string         `json:"server_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	CachePath           *string         `json:"cache_path"`
	ExportDir           *string         `json:"export_dir"`
}

// parseJson overlays cfg with the file passed via -c/-config. Without the
// flag it does nothing; read or decode failures panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.CachePath != nil {
		cfg.CachePath = *jc.CachePath
	}
	if jc.ExportDir != nil {
		cfg.ExportDir = *jc.ExportDir
	}
}
