package config

import (
	"path/filepath"
	"time"
)

// Backend names accepted by -b / "backend".
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// Config holds runtime settings for the GreenKeeper CLI.
//
// Fields:
//   - DataDir: directory holding the SQLite database or profile file.
//   - Backend: one of sqlite, file, s3, memory.
//   - DatabaseFile / ProfileFile: file names inside DataDir.
//   - Encrypt: seal the profile with a passphrase asked at startup.
//   - ServiceNotActiveCooldown: minimum gap between two "service not active" warnings.
//   - LogLevel: debug, info, warn or error.
//   - S3*: object storage settings used when Backend is s3.
type Config struct {
	DataDir                  string
	Backend                  string
	DatabaseFile             string
	ProfileFile              string
	Encrypt                  bool
	ServiceNotActiveCooldown time.Duration
	LogLevel                 string

	S3Bucket       string
	S3Key          string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DataDir = "greenkeeper-data"
	c.Backend = BackendSQLite
	c.DatabaseFile = "greenkeeper.db"
	c.ProfileFile = "profile.json"
	c.Encrypt = false
	c.ServiceNotActiveCooldown = 24 * time.Hour
	c.LogLevel = "info"
	c.S3Bucket = "greenkeeper"
	c.S3Key = "profile"
	c.S3Region = "eu-south-1"
}

// DatabasePath is the SQLite file inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

// ProfilePath is the profile file inside DataDir.
func (c *Config) ProfilePath() string {
	return filepath.Join(c.DataDir, c.ProfileFile)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), GREENKEEPER_* environment variables and command-line
// flags (if present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
