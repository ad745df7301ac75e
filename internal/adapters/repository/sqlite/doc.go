// Package sqlite provides a single-file SQLite store for subjects, polls and
// votes. It uses the pure-Go modernc.org/sqlite driver, so no cgo toolchain is
// needed. Timestamps are stored as Unix nanoseconds.
package sqlite
