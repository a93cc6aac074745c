package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envPrefix = "GREENKEEPER_"

// dotenvFile is read when present; real environment variables win over it.
var dotenvFile = ".env"

// parseEnv overlays Config with GREENKEEPER_* variables taken from the
// environment and the optional .env file. It panics on malformed values.
func parseEnv(cfg *Config) {
	fileVals, err := godotenv.Read(dotenvFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	lookup := func(name string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			return v, true
		}
		v, ok := fileVals[envPrefix+name]
		return v, ok
	}
	str := func(dst *string, name string) {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	str(&cfg.DataDir, "DATA_DIR")
	str(&cfg.Backend, "BACKEND")
	str(&cfg.LogLevel, "LOG_LEVEL")
	str(&cfg.S3Bucket, "S3_BUCKET")
	str(&cfg.S3Key, "S3_KEY")
	str(&cfg.S3Region, "S3_REGION")
	str(&cfg.S3BaseEndpoint, "S3_ENDPOINT")
	str(&cfg.S3AccessKey, "S3_ACCESS_KEY")
	str(&cfg.S3SecretKey, "S3_SECRET_KEY")

	if v, ok := lookup("ENCRYPT"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.Encrypt = b
	}
	if v, ok := lookup("SERVICE_NOT_ACTIVE_COOLDOWN"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.ServiceNotActiveCooldown = d
	}
}
