package config

// LoggingConfig configures the category logger (C8), mirroring the
// teacher's internal/config/logging.go split of level/format/category
// toggles into its own file.
type LoggingConfig struct {
	Level      string          `yaml:"level"`
	JSON       bool            `yaml:"json"`
	Categories map[string]bool `yaml:"categories"`
}

// IsCategoryEnabled reports whether logging is enabled for category,
// defaulting to enabled when no per-category map is configured.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if c.Categories == nil {
		return true
	}
	enabled, exists := c.Categories[category]
	if !exists {
		return true
	}
	return enabled
}
