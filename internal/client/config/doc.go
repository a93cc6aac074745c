// Package config loads runtime configuration for the GreenKeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. GREENKEEPER_* environment variables (see parseEnv), also read from an
//     optional .env file in the working directory; real variables win.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory
//	-b string   storage backend: sqlite, file, s3, memory
//	-e          encrypt the stored profile with a passphrase
//	-w int      "service not active" warning cool-down (seconds)
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations accept either strings like "24h" or integer nanoseconds. Fields
// that are absent keep their previous value:
//
//	{
//	  "data_dir": "/var/lib/greenkeeper",
//	  "backend": "s3",
//	  "encrypt": true,
//	  "service_not_active_cooldown": "24h",
//	  "log_level": "debug",
//	  "s3": {
//	    "bucket": "greenkeeper",
//	    "key": "devices/42/profile",
//	    "region": "eu-south-1",
//	    "base_endpoint": "http://127.0.0.1:9000",
//	    "access_key": "minioadmin",
//	    "secret_key": "minioadmin"
//	  }
//	}
//
// # Environment
//
//	GREENKEEPER_DATA_DIR, GREENKEEPER_BACKEND, GREENKEEPER_ENCRYPT,
//	GREENKEEPER_SERVICE_NOT_ACTIVE_COOLDOWN (Go duration), GREENKEEPER_LOG_LEVEL,
//	GREENKEEPER_S3_BUCKET, GREENKEEPER_S3_KEY, GREENKEEPER_S3_REGION,
//	GREENKEEPER_S3_ENDPOINT, GREENKEEPER_S3_ACCESS_KEY, GREENKEEPER_S3_SECRET_KEY
//
// S3 settings have no flags so that secrets stay off the command line.
package config
