package glasscube

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/glasscube/glasscube/api"
	"github.com/glasscube/glasscube/mailer"
)

// SiteConfig holds all configuration for a glasscube site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "Glasscube")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3044")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`      // Author name for JSON-LD and new drafts

	Addr string `mapstructure:"addr"` // Listen address (default ":3044")

	APIURL     string        `mapstructure:"api_url"`        // Content API base URL (default "http://localhost:3000")
	APITimeout time.Duration `mapstructure:"api_timeout"`    // Per-request timeout (default 10s)
	APIRate    float64       `mapstructure:"api_rate_limit"` // Outbound requests per second, negative disables (default 20)
	APIBurst   int           `mapstructure:"api_burst"`      // Outbound burst size (default 10)

	SessionSecret string `mapstructure:"session_secret"` // Required: preference cookie secret
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	FeedTTL       time.Duration `mapstructure:"feed_ttl"`        // Landing feed cache TTL (default 5min)
	MediaMaxWidth int           `mapstructure:"media_max_width"` // Uploaded images are downscaled past this (default 1600)

	SMTP             SMTPConfig `mapstructure:"smtp"`
	ContactRecipient string     `mapstructure:"contact_recipient"`

	StateDBPath string `mapstructure:"state_db"` // Terminal preferences database (default "data/state.db")
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Sender   string `mapstructure:"sender"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Glasscube"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3044"
	}
	if c.Addr == "" {
		c.Addr = ":3044"
	}
	if c.APIURL == "" {
		c.APIURL = "http://localhost:3000"
	}
	if c.APITimeout == 0 {
		c.APITimeout = 10 * time.Second
	}
	if c.APIRate == 0 {
		c.APIRate = 20
	}
	if c.APIBurst == 0 {
		c.APIBurst = 10
	}
	if c.FeedTTL == 0 {
		c.FeedTTL = 5 * time.Minute
	}
	if c.MediaMaxWidth == 0 {
		c.MediaMaxWidth = 1600
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
	if c.StateDBPath == "" {
		c.StateDBPath = "data/state.db"
	}
}

// LoadConfig reads configuration from path (or ./glasscube.yaml when path is
// empty) and GLASSCUBE_* environment variables. A missing default config
// file is not an error.
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()

	var defaults SiteConfig
	defaults.setDefaults()
	v.SetDefault("name", defaults.Name)
	v.SetDefault("url", defaults.URL)
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("addr", defaults.Addr)
	v.SetDefault("api_url", defaults.APIURL)
	v.SetDefault("api_timeout", defaults.APITimeout)
	v.SetDefault("api_rate_limit", defaults.APIRate)
	v.SetDefault("api_burst", defaults.APIBurst)
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("feed_ttl", defaults.FeedTTL)
	v.SetDefault("media_max_width", defaults.MediaMaxWidth)
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", defaults.SMTP.Port)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.sender", "")
	v.SetDefault("contact_recipient", "")
	v.SetDefault("state_db", defaults.StateDBPath)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("glasscube")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("GLASSCUBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return SiteConfig{}, fmt.Errorf("glasscube: read config: %w", err)
		}
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("glasscube: decode config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// APIOptions are the content API client settings derived from the config.
// A negative rate turns the outbound limiter off.
func (c SiteConfig) APIOptions(logger *slog.Logger) []api.Option {
	opts := []api.Option{api.WithTimeout(c.APITimeout)}
	if c.APIRate > 0 {
		opts = append(opts, api.WithRateLimit(rate.Limit(c.APIRate), max(c.APIBurst, 1)))
	}
	if logger != nil {
		opts = append(opts, api.WithLogger(logger))
	}
	return opts
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithAPIClient replaces the content API client built from the config.
func WithAPIClient(c *api.Client) Option {
	return func(a *App) {
		a.API = c
	}
}

// WithMailer replaces the contact message sender.
func WithMailer(s mailer.Sender) Option {
	return func(a *App) {
		a.Mailer = s
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}
