// Package config loads, normalizes, and validates submerge configuration.
//
// Configuration lives in TOML (~/.config/submerge/config.toml, or
// ./submerge.toml as a project-local fallback). Load applies defaults, reads
// an optional .env file, consults SUBMERGE_* environment fallbacks, expands
// paths, and validates merge settings before returning the Config.
package config
