// Package config handles configuration for the data-access layer,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the record store binding.
//
// Fields:
//   - MongoURI: connection string of the MongoDB deployment.
//   - Database: logical database holding the collections.
//   - UsersCollection / SessionsCollection: collection names.
//   - OperationTimeout: per-operation deadline applied by callers that do
//     not already carry one on their context.
type Config struct {
	MongoURI           string
	Database           string
	UsersCollection    string
	SessionsCollection string
	OperationTimeout   time.Duration
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.MongoURI = "mongodb://localhost:27017"
	c.Database = "accountkeeper"
	c.UsersCollection = "users"
	c.SessionsCollection = "sessions"
	c.OperationTimeout = 5 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
