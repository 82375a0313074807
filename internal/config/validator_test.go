package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWarnings_DevelopmentDefaults(t *testing.T) {
	cfg := &Config{Environment: "dev", LogFormat: "text", LogLevel: "debug", UserCacheSize: 10, Version: "dev"}

	assert.Empty(t, cfg.Warnings())
}

func TestWarnings_Production(t *testing.T) {
	cfg := &Config{Environment: "prod", LogFormat: "text", LogLevel: "debug", UserCacheSize: 0, Version: "dev"}

	warnings := cfg.Warnings()

	assert.Len(t, warnings, 4)
	assert.Contains(t, warnings[0], "LOG_FORMAT")
	assert.Contains(t, warnings[1], "LOG_LEVEL")
	assert.Contains(t, warnings[2], "USER_CACHE_SIZE")
	assert.Contains(t, warnings[3], "VERSION")
}

func TestWarnings_ProductionClean(t *testing.T) {
	cfg := &Config{Environment: "prod", LogFormat: "json", LogLevel: "info", UserCacheSize: 100, Version: "1.0.0"}

	assert.Empty(t, cfg.Warnings())
}
