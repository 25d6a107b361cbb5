package config

import (
	"sync"
)

var (
	// globalConfig holds the process-wide configuration instance.
	globalConfig *Config

	// configMutex protects access to globalConfig.
	configMutex sync.RWMutex
)

// Initialize loads configuration from path with environment variable
// overrides and stores it as the global configuration. An empty path uses
// the defaults. On error the previous configuration is kept.
func Initialize(path string) error {
	cfg, err := LoadConfigWithEnvOverrides(path)
	if err != nil {
		return err
	}
	SetConfig(cfg)
	return nil
}

// GetConfig returns the global configuration instance, or the defaults if
// Initialize has not been called.
// This function is thread-safe and can be called concurrently.
func GetConfig() *Config {
	configMutex.RLock()
	cfg := globalConfig
	configMutex.RUnlock()
	if cfg == nil {
		return NewDefault()
	}
	return cfg
}

// SetConfig sets the global configuration instance.
// This function is thread-safe.
func SetConfig(cfg *Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = cfg
}
