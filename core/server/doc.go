// Package server holds the status API and scheduler configuration.
//
// The Config struct defines the HTTP port, the API key that protects the
// status endpoints and the cron expression (standard five fields or robfig
// descriptors such as "@every 15m") that drives runs in daemon mode.
//
// # Usage
//
// This package is embedded by core/config and read by the start command.
package server
