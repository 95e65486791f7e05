// Package logs reads back the rotating log file written by the CLI.
//
// Tail prints the trailing lines of the current file and, in follow mode,
// keeps polling for appended lines until the context ends. Rotation is
// detected when the file shrinks below the last read offset, in which case
// reading restarts from the beginning of the new file.
package logs
