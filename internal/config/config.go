// Package config loads optional process-wide defaults for the compiler.
// The values only seed the initial default compilation mode at startup;
// every compile call carries its mode explicitly from there on.
package config

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default config file location when set.
const EnvConfigPath = "PYTENSOR_CONFIG"

// Config mirrors the optional YAML config file:
//
//	mode: fast_run          # or fast_compile
//	rewrite_rounds: 8
type Config struct {
	Mode          string `yaml:"mode"`
	RewriteRounds int    `yaml:"rewrite_rounds"`
}

// DefaultRewriteRounds bounds the rewrite engine's fixed-point iteration
// when the config file does not say otherwise.
const DefaultRewriteRounds = 8

var (
	once   sync.Once
	loaded Config
)

// Load returns the process configuration, reading the config file at most
// once. A missing file yields the defaults; a malformed file is logged
// and otherwise ignored.
func Load() Config {
	once.Do(func() {
		loaded = Config{Mode: "fast_run", RewriteRounds: DefaultRewriteRounds}

		path := os.Getenv(EnvConfigPath)
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return
			}
			path = filepath.Join(home, ".pytensor.yaml")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return // No config file is the common case.
		}
		var fromFile Config
		if err := yaml.Unmarshal(data, &fromFile); err != nil {
			log.Printf("config: ignoring malformed %s: %v", path, err)
			return
		}
		if fromFile.Mode != "" {
			loaded.Mode = fromFile.Mode
		}
		if fromFile.RewriteRounds > 0 {
			loaded.RewriteRounds = fromFile.RewriteRounds
		}
	})
	return loaded
}
