package config

import (
	"reflect"
	"strings"

	"craft-sleuth/core/database"
	"craft-sleuth/core/logger"
	"craft-sleuth/core/reconcile"
	"craft-sleuth/core/server"
	"craft-sleuth/core/storage"
	"craft-sleuth/feature/notify"
	"craft-sleuth/feature/reddit"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the bot.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Bot holds the moderation settings (subreddit, retention, flairs).
	Bot reconcile.Config `mapstructure:"bot"`
	// Reddit holds the API credentials and endpoint.
	Reddit reddit.Config `mapstructure:"reddit"`
	// Notify selects and configures the notification sinks.
	Notify notify.Config `mapstructure:"notify"`
	// Database holds configuration for the tracked posts store.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the purged posts archive.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Server holds configuration for the status API and scheduler.
	Server server.Config `mapstructure:"server"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is fine, the environment may carry everything.
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// BOT_SUB_NAME -> bot.sub_name
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.Bot.UntrackedFlairs = trimEmpty(config.Bot.UntrackedFlairs)
	config.Notify.Sinks = trimEmpty(config.Notify.Sinks)

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}

// trimEmpty drops blank entries left over from splitting "a, ,b" style lists.
func trimEmpty(values []string) []string {
	out := values[:0]
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, value)
		}
	}
	return out
}
