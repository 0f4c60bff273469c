// Package archive keeps a copy of every purged post in object storage.
//
// Archiver implements reconcile.Archiver. Each purge writes
// <prefix>/<post_id>.json containing the row, the purge reason and the purge
// time. List and Get back the archive commands.
package archive
