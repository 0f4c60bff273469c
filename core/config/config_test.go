package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "CraftSleuthBot", cfg.Bot.Name)
	assert.Equal(t, 7, cfg.Bot.MaxDays)
	assert.Equal(t, 0, cfg.Bot.MaxPosts)
	assert.Equal(t, []string{"Solved", "Abandoned"}, cfg.Bot.UntrackedFlairs)
	assert.Equal(t, float64(5), cfg.Bot.NotificationPauseSeconds)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, []string{"log"}, cfg.Notify.Sinks)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "BOT_SUB_NAME=whatisthisthing\nBOT_MAX_DAYS=3\nBOT_UNTRACKED_FLAIRS=Solved, ,Question\nNOTIFY_SINKS=log,discord\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		for _, key := range []string{"BOT_SUB_NAME", "BOT_MAX_DAYS", "BOT_UNTRACKED_FLAIRS", "NOTIFY_SINKS"} {
			_ = os.Unsetenv(key)
		}
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "whatisthisthing", cfg.Bot.SubName)
	assert.Equal(t, 3, cfg.Bot.MaxDays)
	assert.Equal(t, []string{"Solved", "Question"}, cfg.Bot.UntrackedFlairs)
	assert.Equal(t, []string{"log", "discord"}, cfg.Notify.Sinks)
	assert.NoError(t, cfg.Bot.Validate())
}

func TestTrimEmpty(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, trimEmpty([]string{" a", "", "b ", "  "}))
	assert.Empty(t, trimEmpty(nil))
}
