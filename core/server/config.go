package server

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Config holds configuration for the status API and the run scheduler.
type Config struct {
	// Port is the port where the status API will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// Schedule is the cron expression that triggers runs in daemon mode.
	Schedule string `mapstructure:"schedule" default:"@every 15m"`
	// Enabled starts the status API alongside the scheduler.
	Enabled bool `mapstructure:"enabled" default:"true"`
}

// ParseSchedule validates the configured schedule.
func (c Config) ParseSchedule() (cron.Schedule, error) {
	schedule, err := cron.ParseStandard(c.Schedule)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", c.Schedule, err)
	}
	return schedule, nil
}
