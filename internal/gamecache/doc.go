// Package gamecache persists the catalog as a pretty-printed JSON array.
//
// Writes go through a temp file and rename while an advisory lock on
// "<cache>.lock" is held, so concurrent invocations never interleave bytes.
package gamecache
