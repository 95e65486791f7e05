// Package main hosts the twitch CLI entrypoint and command graph.
//
// The root command lists the locally cached game catalog, rebuilds it from
// the distribution client's registries with --refresh, and starts a title
// with --launch. Subcommands cover configuration scaffolding, environment
// checks, thumbnail downloads, and local tagging. All catalog work happens in
// internal/library; this package only parses flags and renders results.
package main
