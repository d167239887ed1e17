package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	defaultFileName         = "/.env"
	defaultOverrideFileName = "/.local.env"
)

type logger interface {
	Debugf(format string, a ...any)
	Infof(format string, a ...any)
	Warnf(format string, a ...any)
}

// EnvLoader serves values with the precedence process environment, then .<APP_ENV>.env
// (or .local.env), then .env.
type EnvLoader struct {
	values map[string]string
}

// NewEnvFile reads the .env files under configFolder. Missing files are not an error.
func NewEnvFile(configFolder string, l logger) Config {
	e := &EnvLoader{values: make(map[string]string)}
	e.read(configFolder, l)

	return e
}

func (e *EnvLoader) read(folder string, l logger) {
	defaultFile := filepath.Clean(folder + defaultFileName)
	e.merge(defaultFile, l)

	overrideFile := filepath.Clean(folder + defaultOverrideFileName)
	if env := e.Get("APP_ENV"); env != "" {
		overrideFile = filepath.Clean(folder + "/." + env + ".env")
	}

	e.merge(overrideFile, l)
}

func (e *EnvLoader) merge(file string, l logger) {
	values, err := godotenv.Read(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Debugf("config file %s not found, skipping", file)
		} else {
			l.Warnf("failed to load config from file: %v, Err: %v", file, err)
		}

		return
	}

	for k, v := range values {
		e.values[k] = v
	}

	l.Infof("Loaded config from file: %v", file)
}

func (e *EnvLoader) Get(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return e.values[key]
}

func (e *EnvLoader) GetOrDefault(key, defaultValue string) string {
	if v := e.Get(key); v != "" {
		return v
	}

	return defaultValue
}
