// Package manifest reads the per-title fuel.json launch manifest and turns it
// into a launch descriptor.
//
// A manifest whose Main entry names a ClientId is launched by protocol
// handoff; everything else is launched by spawning Main.Command relative to
// the install directory. Manifests are checked against an embedded JSON
// Schema before decoding so a malformed file reports every problem at once.
package manifest
