// Package config loads, normalizes, and validates xwordcodec configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files (or YAML when the path ends in .yaml/.yml), and
// honours XDG_CONFIG_HOME when locating the default file. The Config type
// centralizes the knobs the decoder, key store and CLI need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
