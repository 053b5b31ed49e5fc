package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by the commands. Flags take precedence.
const (
	EnvDB        = "WORDRIS_DB"
	EnvPacks     = "WORDRIS_PACKS"
	EnvConfig    = "WORDRIS_CONFIG"
	EnvRelayAddr = "WORDRIS_RELAY_ADDR"
	EnvSSHAddr   = "WORDRIS_SSH_ADDR"
	EnvLogLevel  = "WORDRIS_LOG_LEVEL"
)

// LoadEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win.
func LoadEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// GetEnv returns the value of k, or def when it is unset or empty.
func GetEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
