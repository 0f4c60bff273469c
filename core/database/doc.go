// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to open either a SQLite file (the
// default, suitable for a single-host bot) or a MySQL server, based on the
// application's configuration.
//
// # Connect
//
// Connect opens the configured driver, applies pool settings and verifies the
// connection with a ping bounded by TimeoutSeconds.
//
// # Schema Inspection
//
// GetTableColumns returns the column definitions of a table for both
// dialects. The post store uses it to verify that its table carries every
// column it needs after migration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "tracked_posts")
package database
