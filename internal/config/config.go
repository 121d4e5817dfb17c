package config

import "os"

// Get returns the value of an environment variable, falling back to a
// default when unset or empty. Callers are expected to have loaded any
// .env file beforehand (the cmds do this via godotenv).
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
