// Package preflight runs the environment checks behind `twitch check`.
//
// Each check returns a Result rather than an error so the command can render
// every problem at once.
package preflight
