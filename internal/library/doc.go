// Package library wires the registry reader, catalog builder, game cache,
// launcher and thumbnail fetcher into the operations the CLI exposes.
package library
