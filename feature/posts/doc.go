// Package posts is the durable store of tracked posts.
//
// Store implements reconcile.Store on top of gorm, so the same code serves the
// default SQLite file and a MySQL server. Rows live in the tracked_posts table
// with text timestamps (see utils.TimestampLayout). Init migrates the table and
// then verifies the required columns with the database inspector; a table
// created by hand with a different shape yields ErrSchemaMismatch.
//
// Beyond the engine contract the store offers List, Get and Count for the
// status API and the posts maintenance commands.
package posts
