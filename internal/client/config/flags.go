package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/greenkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
// It panics on malformed values.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-b", "-w", "-l"}, "-e")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend: sqlite, file, s3, memory")
	fs.BoolVar(&cfg.Encrypt, "e", cfg.Encrypt, "encrypt the stored profile with a passphrase")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	cooldown := fs.Int("w", int(cfg.ServiceNotActiveCooldown.Seconds()), "service not active warning cool-down (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ServiceNotActiveCooldown = time.Duration(*cooldown) * time.Second
}
