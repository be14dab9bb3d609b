// Package config loads runtime configuration for the MindKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: MINDKEEPER_SERVER_ADDR, MINDKEEPER_ONLINE_CHECK_INTERVAL,
//     MINDKEEPER_CACHE_PATH and MINDKEEPER_EXPORT_DIR, optionally seeded
//     from the dotenv file named by -env (".env" by default).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-d string   local cache database file
//	-e string   export download directory
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "cache_path": "mindkeeper.db",
//	  "export_dir": "exports"
//	}
package config
