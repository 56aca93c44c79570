// Package sqlite provides SQLite-backed graph and topic storage.
//
// Every saved graph is kept as a run identified by a UUID, so earlier
// builds stay queryable; Load returns the newest run. Schema changes are
// applied from the embedded migrations directory on open.
//
// The driver is modernc.org/sqlite, a pure Go port, so no CGO is needed.
package sqlite
