// Package config loads and validates application configuration from
// config.yml. Defaults are applied after validation so a minimal file
// (just server.port) is enough to run.
package config
