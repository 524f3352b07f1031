// Package database provides SQLite-based storage for crawl run history.
//
// This package implements the Archive, which stores:
//   - One row per completed run with its headline counts
//   - The run's quotes in listing order
//   - The run's author records in first-reference order
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the archive is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
