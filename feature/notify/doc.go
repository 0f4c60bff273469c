// Package notify provides the outbound notification sinks.
//
// Every sink implements reconcile.Notifier. LogNotifier writes to the zap
// logger, DiscordNotifier posts to a channel with discordgo and the Reddit
// modmail sink lives in feature/reddit. New assembles the sinks named in the
// configuration into a Multi, which delivers to all of them and reports the
// failures together.
package notify
