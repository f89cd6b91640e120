// Package env holds small helpers for reading the process environment.
package env

import "os"

// Get reads the named variable, falling back when it is unset or empty.
func Get(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
