// Package exiftool provides a typed wrapper around the exiftool CLI.
//
// This package has no snapsort-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - FileType: supported container enum with canonical extensions
//   - Fields: the date-bearing metadata keys extracted per file
//   - Client: executes exiftool for detection, extraction, and timestamp writes
//
// The Executor seam allows tests to substitute command execution without a
// real exiftool installation.
package exiftool
