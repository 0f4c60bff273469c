package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// discordMessageLimit is the longest message content Discord accepts.
const discordMessageLimit = 2000

// channelSender is the part of *discordgo.Session the notifier needs.
type channelSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordNotifier posts messages to a Discord channel through the REST API.
type DiscordNotifier struct {
	session   channelSender
	channelID string
}

// NewDiscordNotifier creates a notifier from a bot token.
func NewDiscordNotifier(token, channelID string) (*DiscordNotifier, error) {
	if token == "" || channelID == "" {
		return nil, errors.New("discord sink needs a token and a channel id")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return &DiscordNotifier{session: session, channelID: channelID}, nil
}

// Send posts the message, truncated to the Discord limit.
func (n *DiscordNotifier) Send(ctx context.Context, message string) error {
	if r := []rune(message); len(r) > discordMessageLimit {
		message = string(r[:discordMessageLimit-1]) + "…"
	}
	if _, err := n.session.ChannelMessageSend(n.channelID, message, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to post to discord channel %s: %w", n.channelID, err)
	}
	return nil
}
