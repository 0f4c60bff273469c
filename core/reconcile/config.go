package reconcile

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config holds the bot settings consumed by the engine.
type Config struct {
	// Name is the bot name used in operator reports.
	Name string `mapstructure:"name" default:"CraftSleuthBot"`
	// Operator is who failure reports ask readers to contact.
	Operator string `mapstructure:"operator" default:""`
	// SubName is the subreddit to monitor.
	SubName string `mapstructure:"sub_name" default:""`
	// MaxDays is the retention window in days.
	MaxDays int `mapstructure:"max_days" default:"7"`
	// MaxPosts bounds the new-posts feed (0 = unbounded).
	MaxPosts int `mapstructure:"max_posts" default:"0"`
	// UntrackedFlairs is the list of flair labels that end tracking.
	UntrackedFlairs []string `mapstructure:"untracked_flairs" default:"Solved,Abandoned"`
	// NotificationPauseSeconds is the pause after each removal notification.
	NotificationPauseSeconds float64 `mapstructure:"notification_pause_seconds" default:"5"`
}

// ErrNotConfigured is returned when the bot has no subreddit to monitor.
var ErrNotConfigured = errors.New("bot is not configured: sub_name is empty")

// Validate checks the configuration for values the engine cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.SubName) == "" {
		return ErrNotConfigured
	}
	if c.MaxDays < 0 {
		return fmt.Errorf("max_days must not be negative, got %d", c.MaxDays)
	}
	if c.MaxPosts < 0 {
		return fmt.Errorf("max_posts must not be negative, got %d", c.MaxPosts)
	}
	if c.NotificationPauseSeconds < 0 {
		return fmt.Errorf("notification_pause_seconds must not be negative, got %v", c.NotificationPauseSeconds)
	}
	for _, label := range c.UntrackedFlairs {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if ParseFlair(label) == FlairUnknown && !strings.EqualFold(label, string(FlairUnknown)) {
			return fmt.Errorf("unrecognized untracked flair %q", label)
		}
	}
	return nil
}

// Options converts the configuration into engine options.
func (c Config) Options() Options {
	flairs := make([]Flair, 0, len(c.UntrackedFlairs))
	for _, label := range c.UntrackedFlairs {
		if strings.TrimSpace(label) == "" {
			continue
		}
		flairs = append(flairs, ParseFlair(label))
	}

	return Options{
		SubName:           strings.TrimSpace(c.SubName),
		MaxDays:           c.MaxDays,
		MaxPosts:          c.MaxPosts,
		UntrackedFlairs:   NewFlairSet(flairs...),
		NotificationPause: time.Duration(c.NotificationPauseSeconds * float64(time.Second)),
	}
}
