package notify

import (
	"context"
	"fmt"

	"craft-sleuth/core/reconcile"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Multi fans a message out to several sinks.
type Multi struct {
	names []string
	sinks []reconcile.Notifier
}

// Send delivers to every sink and returns all failures together.
func (m *Multi) Send(ctx context.Context, message string) error {
	var errs error
	for i, sink := range m.sinks {
		if err := sink.Send(ctx, message); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", m.names[i], err))
		}
	}
	return errs
}

// Names returns the configured sink names.
func (m *Multi) Names() []string {
	return m.names
}

// New builds the configured sinks. modmail backs the modmail sink and may be
// nil when that sink is not requested.
func New(cfg Config, modmail reconcile.Notifier, logger *zap.Logger) (*Multi, error) {
	sinks := cfg.Sinks
	if len(sinks) == 0 {
		sinks = []string{SinkLog}
	}

	m := &Multi{}
	seen := make(map[string]bool, len(sinks))
	for _, name := range sinks {
		if seen[name] {
			continue
		}
		seen[name] = true

		var sink reconcile.Notifier
		switch name {
		case SinkLog:
			sink = NewLogNotifier(logger)
		case SinkModmail:
			if modmail == nil {
				return nil, fmt.Errorf("notification sink %q is not available", name)
			}
			sink = modmail
		case SinkDiscord:
			discord, err := NewDiscordNotifier(cfg.DiscordToken, cfg.DiscordChannelID)
			if err != nil {
				return nil, err
			}
			sink = discord
		default:
			return nil, fmt.Errorf("unknown notification sink %q", name)
		}

		m.names = append(m.names, name)
		m.sinks = append(m.sinks, sink)
	}
	return m, nil
}
