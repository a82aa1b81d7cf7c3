// Package config manages user-level settings stored at
// ~/.agentpack/config.yaml and the default locations of the registry
// and installed-state directories. Every key can be overridden through
// AGENTPACK_* environment variables.
package config
