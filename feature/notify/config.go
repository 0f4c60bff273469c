package notify

// Config selects and configures the notification sinks.
type Config struct {
	// Sinks lists the enabled sinks: log, modmail, discord.
	Sinks []string `mapstructure:"sinks" default:"log"`
	// DiscordToken is the bot token used for the discord sink.
	DiscordToken string `mapstructure:"discord_token" default:""`
	// DiscordChannelID is the channel the discord sink posts to.
	DiscordChannelID string `mapstructure:"discord_channel_id" default:""`
}

const (
	SinkLog     = "log"
	SinkModmail = "modmail"
	SinkDiscord = "discord"
)
