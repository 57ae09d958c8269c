package config

// Config represents the persistent caseline configuration stored as
// config.toml in the .caseline/ directory. The TOML layout uses sections for
// logical grouping.
type Config struct {
	Version   int             `toml:"version"`
	Client    ClientConfig    `toml:"client"`
	Assistant AssistantConfig `toml:"assistant"`
}

// ClientConfig holds settings for connecting to the case-management API:
// the base URL plus the anti-forgery header the session requires.
type ClientConfig struct {
	APITarget  string `toml:"api_target,omitempty"`
	CSRFHeader string `toml:"csrf_header,omitempty"`
	CSRFToken  string `toml:"csrf_token,omitempty"`
}

// AssistantConfig holds settings for the AI assistant stream.
type AssistantConfig struct {
	Path string `toml:"path,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"client.api_target": {
		get: func(c *Config) string { return c.Client.APITarget },
		set: func(c *Config, v string) error { c.Client.APITarget = v; return nil },
	},
	"client.csrf_header": {
		get: func(c *Config) string { return c.Client.CSRFHeader },
		set: func(c *Config, v string) error { c.Client.CSRFHeader = v; return nil },
	},
	"client.csrf_token": {
		get: func(c *Config) string { return c.Client.CSRFToken },
		set: func(c *Config, v string) error { c.Client.CSRFToken = v; return nil },
	},
	"assistant.path": {
		get: func(c *Config) string { return c.Assistant.Path },
		set: func(c *Config, v string) error { c.Assistant.Path = v; return nil },
	},
}
