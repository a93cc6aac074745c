package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/greenkeeper/internal/flagx"
	"github.com/dmitrijs2005/greenkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from a zero value.
type JsonConfig struct {
	DataDir                  *string         `json:"data_dir"`
	Backend                  *string         `json:"backend"`
	DatabaseFile             *string         `json:"database_file"`
	ProfileFile              *string         `json:"profile_file"`
	Encrypt                  *bool           `json:"encrypt"`
	ServiceNotActiveCooldown *timex.Duration `json:"service_not_active_cooldown"`
	LogLevel                 *string         `json:"log_level"`
	S3                       *JsonS3Config   `json:"s3"`
}

type JsonS3Config struct {
	Bucket       *string `json:"bucket"`
	Key          *string `json:"key"`
	Region       *string `json:"region"`
	BaseEndpoint *string `json:"base_endpoint"`
	AccessKey    *string `json:"access_key"`
	SecretKey    *string `json:"secret_key"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c / -config. Without either flag it does nothing. It panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.DatabaseFile, jc.DatabaseFile)
	setString(&cfg.ProfileFile, jc.ProfileFile)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.Encrypt != nil {
		cfg.Encrypt = *jc.Encrypt
	}
	if jc.ServiceNotActiveCooldown != nil {
		cfg.ServiceNotActiveCooldown = jc.ServiceNotActiveCooldown.Duration
	}

	if s3 := jc.S3; s3 != nil {
		setString(&cfg.S3Bucket, s3.Bucket)
		setString(&cfg.S3Key, s3.Key)
		setString(&cfg.S3Region, s3.Region)
		setString(&cfg.S3BaseEndpoint, s3.BaseEndpoint)
		setString(&cfg.S3AccessKey, s3.AccessKey)
		setString(&cfg.S3SecretKey, s3.SecretKey)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
