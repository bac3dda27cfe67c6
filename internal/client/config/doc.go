// Package config loads runtime configuration for the Time Machine client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the journal API
//	-t int      request timeout (seconds)
//	-d string   path of the local session database
//	-l string   log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so it can be either
// a string like "10s" or integer nanoseconds. Missing keys keep the value
// from the previous stage:
//
//	{
//	  "server_url": "https://tm.example.com",
//	  "request_timeout": "10s",
//	  "database_path": "/home/me/.timemachine.db",
//	  "log_level": "debug"
//	}
//
// This package does not read environment variables.
package config
