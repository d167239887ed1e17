// Package config resolves pagser settings from .env files and the process environment.
package config

// Config is the read-only view of the application settings.
type Config interface {
	Get(string) string
	GetOrDefault(string, string) string
}
