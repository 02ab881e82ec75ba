// Package store persists the student table. Every implementation works
// in whole snapshots: Load returns the full collection in stored order
// and Save rewrites the entire backing resource, so the higher-level
// load-mutate-save pass is the only unit of change.
package store

import "studentms/internal/model"

// Store reads and rewrites the full record collection.
type Store interface {
	// Load returns every record in stored order. A backing resource
	// that does not exist yet yields an empty slice, not an error, and
	// every returned record has the full column set populated.
	Load() ([]model.Student, error)

	// Save replaces the entire backing resource with the given
	// records. The schema header survives even for zero records.
	Save(records []model.Student) error
}

// Driver names accepted by the STORE_DRIVER setting.
const (
	DriverCSV      = "csv"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)
