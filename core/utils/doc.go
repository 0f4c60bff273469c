// Package utils provides small shared helpers for the craft-sleuth bot.
// It holds the record timestamp codec and the retention-age arithmetic used by
// the reconcile engine and the post store.
package utils
