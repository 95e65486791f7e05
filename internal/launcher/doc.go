// Package launcher starts a catalog game.
//
// Direct games are spawned from their install directory; indirect games hand
// their protocol URL to the platform URL handler. Either way the launcher
// returns once the process exists and never waits on, monitors or restarts it.
// Games without launch information fail before anything is spawned.
package launcher
