// Package config loads, normalizes, and validates av1studio configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// AV1AN_BINARY. The Config type centralizes the external tool paths, the
// preset catalog location, and logging knobs the CLI needs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
