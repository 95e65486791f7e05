// Package config loads, normalizes, and validates twitch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TWITCH_PRODUCT_DB. The Config type carries every path the registry reader,
// cache store, launcher, and thumbnail fetcher need, so components receive it
// explicitly instead of consulting the process environment on their own.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
