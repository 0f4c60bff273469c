// Package logger provides a structured logging facility based on Zap.
//
// New builds a development logger for the debug level and a production logger
// otherwise, with json or console encoding. An optional file receives a copy of
// every entry, which suits the bot when it is started by cron.
//
// Engine runs tag their entries with a run_id field. HTTP requests served by
// the status API carry a ray_id; WithRayID extracts it from the Fiber context.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Bot started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
