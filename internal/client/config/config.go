package config

import "time"

// Config holds runtime settings for the Time Machine client.
//
// Fields:
//   - ServerURL: base URL of the journal API, scheme included.
//   - RequestTimeout: upper bound for a single API call.
//   - DatabasePath: SQLite file that keeps the session between runs.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	DatabasePath   string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "timemachine.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
