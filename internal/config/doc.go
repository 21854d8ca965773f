// Package config loads, normalizes, and validates snapsort's TOML
// configuration.
//
// Load applies defaults, expands ~ in path fields, and rejects unusable
// values before any pipeline code runs. A sample configuration is embedded
// and written by the `snapsort config init` command.
package config
