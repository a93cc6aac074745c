package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-d", "/tmp/gk", "-b", "file", "-e", "-w", "3600", "-l", "debug"},
			expected: &Config{
				DataDir:                  "/tmp/gk",
				Backend:                  BackendFile,
				Encrypt:                  true,
				ServiceNotActiveCooldown: time.Hour,
				LogLevel:                 "debug",
			},
		},
		{
			name: "bool flag before positional-looking value",
			args: []string{"cmd", "-e", "-b", "s3"},
			expected: &Config{
				Backend: BackendS3,
				Encrypt: true,
			},
		},
		{
			name:     "unknown flags ignored",
			args:     []string{"cmd", "-x", "1", "-config", "conf.json"},
			expected: &Config{},
		},
		{name: "incorrect cool-down", args: []string{"cmd", "-w", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
