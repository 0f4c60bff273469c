package reddit

// Config holds the Reddit API settings.
type Config struct {
	// BaseURL is the API root for authenticated calls.
	BaseURL string `mapstructure:"base_url" default:"https://oauth.reddit.com"`
	// AuthURL is the OAuth token endpoint.
	AuthURL string `mapstructure:"auth_url" default:"https://www.reddit.com/api/v1/access_token"`
	// ClientID is the script application id.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is the script application secret.
	ClientSecret string `mapstructure:"client_secret" default:""`
	// Username is the bot account.
	Username string `mapstructure:"username" default:""`
	// Password is the bot account password.
	Password string `mapstructure:"password" default:""`
	// AccessToken skips the password grant when set.
	AccessToken string `mapstructure:"access_token" default:""`
	// UserAgent identifies the bot to Reddit.
	UserAgent string `mapstructure:"user_agent" default:"craft-sleuth/1.0"`
	// TimeoutSeconds bounds every HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// HasCredentials reports whether the password grant can be used.
func (c Config) HasCredentials() bool {
	return c.ClientID != "" && c.Username != ""
}
