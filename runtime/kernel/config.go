package kernel

import "fmt"

// Config represents kernel configuration
type Config struct {
	// MaxFollowUps caps the number of follow-up events chained by one Apply call.
	MaxFollowUps int `json:"maxFollowUps,omitempty" yaml:"maxFollowUps,omitempty"`
	// IgnoreUnknownPlugins skips profile plugins missing from the registry.
	IgnoreUnknownPlugins bool `json:"ignoreUnknownPlugins,omitempty" yaml:"ignoreUnknownPlugins,omitempty"`
	// Plugins overrides the plugin list of every model profile when set.
	Plugins []string `json:"plugins,omitempty" yaml:"plugins,omitempty"`
}

// DefaultConfig returns the default kernel configuration
func DefaultConfig() Config {
	return Config{MaxFollowUps: 100}
}

// Validate checks configuration values
func (c *Config) Validate() error {
	if c.MaxFollowUps < 0 {
		return fmt.Errorf("kernel: maxFollowUps must not be negative: %v", c.MaxFollowUps)
	}
	return nil
}
