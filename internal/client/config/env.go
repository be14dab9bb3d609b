package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "MINDKEEPER_"

// parseEnv seeds the environment from the dotenv file chosen with -env and
// overlays the CLI's MINDKEEPER_* variables. Variables already set in the
// process win over the file.
func parseEnv(cfg *Config) {
	if err := godotenv.Load(flagx.EnvFile()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(envPrefix + "SERVER_ADDR"); ok {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := os.LookupEnv(envPrefix + "ONLINE_CHECK_INTERVAL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.OnlineCheckInterval = d
	}
	if v, ok := os.LookupEnv(envPrefix + "CACHE_PATH"); ok {
		cfg.CachePath = v
	}
	if v, ok := os.LookupEnv(envPrefix + "EXPORT_DIR"); ok {
		cfg.ExportDir = v
	}
}
