// Package monitor runs the bot as a daemon.
//
// # Components
//
//   - Runner: executes engine runs one at a time (singleflight) and keeps
//     the status of the latest one.
//   - Scheduler: triggers runs on a robfig/cron schedule.
//   - Handler: the Fiber status API.
//   - Feature: registers the handler with the loader.
//
// # HTTP Endpoints
//
//   - GET /health : liveness.
//   - GET /posts : tracked posts (supports ?limit=).
//   - GET /posts/:id : one tracked post.
//   - GET /runs/last : status of the latest run.
//   - POST /runs : run now and return the report.
package monitor
