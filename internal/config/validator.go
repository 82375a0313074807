package config

import (
	"fmt"
	"strings"
)

// Warnings returns non-fatal notes about settings that are valid but likely
// unintended. Load has already rejected invalid values.
func (c *Config) Warnings() []string {
	var warnings []string

	if !c.IsDevelopment() && !strings.EqualFold(c.LogFormat, "json") {
		warnings = append(warnings, fmt.Sprintf("LOG_FORMAT=%s outside development; json is easier to ingest", c.LogFormat))
	}

	if !c.IsDevelopment() && strings.EqualFold(c.LogLevel, "debug") {
		warnings = append(warnings, "LOG_LEVEL=debug outside development logs request headers")
	}

	if c.UserCacheSize == 0 {
		warnings = append(warnings, "USER_CACHE_SIZE=0 disables the user read cache")
	}

	if c.Version == DefaultVersion && !c.IsDevelopment() {
		warnings = append(warnings, "VERSION is not set; /version will report \"dev\"")
	}

	return warnings
}
