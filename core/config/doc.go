// Package config provides configuration management for the bot.
//
// It uses Viper for loading configuration from environment variables and an
// optional .env file (loaded with godotenv). Defaults come from the `default`
// struct tags of every partial configuration.
//
// # Configuration Structure
//
//   - Bot: subreddit, retention window, feed bound, untracked flairs, pause
//   - Reddit: API endpoint, user agent and OAuth token
//   - Notify: notification sinks (log, modmail, discord)
//   - Database: sqlite or MySQL connection for the tracked posts table
//   - Storage: S3/MinIO archive of purged posts
//   - Log: logging level, format and optional file
//   - Server: status API and run schedule
//
// List values (BOT_UNTRACKED_FLAIRS, NOTIFY_SINKS) are comma separated.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Bot.SubName)
package config
