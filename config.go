package folio

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/alexchen-dev/folio/contact"
	"github.com/alexchen-dev/folio/content"
	"github.com/alexchen-dev/folio/navstate"
)

// Contact delivery backends.
const (
	DeliverySimulate = "simulate"
	DeliverySMTP     = "smtp"
	DeliveryInbox    = "inbox"
)

// Duration wraps time.Duration with TOML-friendly string parsing ("30s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		d.Duration = 0
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative duration %q not allowed", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// NavConfig tunes the scroll tracker shipped to the browser.
type NavConfig struct {
	HideThreshold     int    `toml:"hide_threshold"`
	ProbeBias         int    `toml:"probe_bias"`
	ScrolledThreshold int    `toml:"scrolled_threshold"`
	ResetOnMiss       bool   `toml:"reset_on_miss"`
	WasmURL           string `toml:"wasm_url"` // e.g. /public/nav.wasm; empty disables
}

// SMTPConfig is the [smtp] table.
type SMTPConfig struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
	User string `toml:"user"`
	Pass string `toml:"pass"`
	To   string `toml:"to"`
}

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string `toml:"name"`        // Site name (default: profile name)
	URL         string `toml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `toml:"description"` // Site description for RSS and meta tags
	Author      string `toml:"author"`      // Author name for JSON-LD

	Addr     string `toml:"addr"`      // Listen address (default ":3000")
	LogLevel string `toml:"log_level"` // debug, info, warn, error, off

	ContentPath  string `toml:"content_path"`  // YAML content file; empty serves the built-in sample
	WatchContent bool   `toml:"watch_content"` // reload ContentPath on change
	ResumePath   string `toml:"resume_path"`   // local PDF served at /resume.pdf

	DatabasePath string `toml:"database_path"` // SQLite path; empty disables the inbox and admin

	AdminPassword string `toml:"admin_password"`
	SessionSecret string `toml:"session_secret"` // Required: cookie signing secret
	CookieSecure  bool   `toml:"cookie_secure"`  // Set true for HTTPS

	Delivery       string     `toml:"delivery"`        // simulate (default), smtp or inbox
	SimulatedDelay Duration   `toml:"simulated_delay"` // default 1.5s
	SMTP           SMTPConfig `toml:"smtp"`

	ContactPerMinute float64  `toml:"contact_per_minute"` // per-IP submit rate (default 6)
	ContactBurst     int      `toml:"contact_burst"`      // default 3
	FormTTL          Duration `toml:"form_ttl"`           // idle contact form eviction (default 30m)

	FeedCacheTTL    Duration `toml:"feed_cache_ttl"`   // default 5m
	ShutdownTimeout Duration `toml:"shutdown_timeout"` // default 10s

	Nav NavConfig `toml:"nav"`
}

func (c *SiteConfig) setDefaults() {
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Delivery == "" {
		c.Delivery = DeliverySimulate
	}
	if c.SimulatedDelay.Duration == 0 {
		c.SimulatedDelay.Duration = contact.DefaultDelay
	}
	if c.ContactPerMinute == 0 {
		c.ContactPerMinute = 6
	}
	if c.ContactBurst == 0 {
		c.ContactBurst = 3
	}
	if c.FormTTL.Duration == 0 {
		c.FormTTL.Duration = 30 * time.Minute
	}
	if c.FeedCacheTTL.Duration == 0 {
		c.FeedCacheTTL.Duration = 5 * time.Minute
	}
	if c.ShutdownTimeout.Duration == 0 {
		c.ShutdownTimeout.Duration = 10 * time.Second
	}
	if c.Nav.HideThreshold == 0 {
		c.Nav.HideThreshold = navstate.DefaultHideThreshold
	}
	if c.Nav.ProbeBias == 0 {
		c.Nav.ProbeBias = navstate.DefaultProbeBias
	}
	if c.Nav.ScrolledThreshold == 0 {
		c.Nav.ScrolledThreshold = navstate.DefaultScrolledThreshold
	}
}

// fillFromSite uses the profile for any site identity left unset.
func (c *SiteConfig) fillFromSite(site *content.Site) {
	if site == nil {
		return
	}
	if c.Name == "" {
		c.Name = site.Profile.Name
	}
	if c.Author == "" {
		c.Author = site.Profile.Name
	}
	if c.Description == "" {
		c.Description = site.Profile.Headline
	}
}

// Validate reports configuration that cannot work.
func (c *SiteConfig) Validate() error {
	switch c.Delivery {
	case DeliverySimulate, DeliverySMTP, DeliveryInbox:
	default:
		return fmt.Errorf("folio: unknown delivery %q", c.Delivery)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}
	return nil
}

// LoadConfig builds a SiteConfig from defaults, the optional TOML file at
// path, and environment overrides, in that order. A missing file is not an error.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := decodeConfig(f, &cfg); err != nil {
				return SiteConfig{}, fmt.Errorf("folio: config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return SiteConfig{}, fmt.Errorf("folio: config: %w", err)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return SiteConfig{}, err
	}
	cfg.setDefaults()
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *SiteConfig) error {
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return fmt.Errorf("unknown key %q", undec[0].String())
	}
	return nil
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *SiteConfig) error {
	str := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}
	str(&cfg.Name, "FOLIO_SITE_NAME", "SITE_NAME")
	str(&cfg.URL, "FOLIO_SITE_URL", "SITE_URL")
	str(&cfg.Description, "FOLIO_SITE_DESCRIPTION", "SITE_DESCRIPTION")
	str(&cfg.Author, "FOLIO_SITE_AUTHOR", "SITE_AUTHOR")
	str(&cfg.Addr, "FOLIO_ADDR", "ADDR")
	str(&cfg.LogLevel, "FOLIO_LOG_LEVEL")
	str(&cfg.ContentPath, "FOLIO_CONTENT_PATH")
	str(&cfg.ResumePath, "FOLIO_RESUME_PATH")
	str(&cfg.DatabasePath, "FOLIO_DATABASE_PATH", "DATABASE_PATH")
	str(&cfg.AdminPassword, "FOLIO_ADMIN_PASSWORD", "ADMIN_PASSWORD")
	str(&cfg.SessionSecret, "FOLIO_SESSION_SECRET", "ADMIN_SESSION_SECRET")
	str(&cfg.Delivery, "FOLIO_DELIVERY")
	str(&cfg.SMTP.Host, "SMTP_HOST")
	str(&cfg.SMTP.Port, "SMTP_PORT")
	str(&cfg.SMTP.User, "SMTP_USER")
	str(&cfg.SMTP.Pass, "SMTP_PASS")
	str(&cfg.SMTP.To, "SMTP_TO")

	for _, b := range []struct {
		dst  *bool
		keys []string
	}{
		{&cfg.CookieSecure, []string{"FOLIO_COOKIE_SECURE", "COOKIE_SECURE"}},
		{&cfg.WatchContent, []string{"FOLIO_WATCH_CONTENT"}},
	} {
		for _, k := range b.keys {
			v := os.Getenv(k)
			if v == "" {
				continue
			}
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("folio: %s: %w", k, err)
			}
			*b.dst = parsed
			break
		}
	}
	return nil
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

// WithViews replaces the built-in components named in v. Nil entries keep
// the defaults.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v.merge(DefaultViews())
	}
}

// WithSender overrides the contact delivery backend chosen from config.
func WithSender(s contact.Sender) Option {
	return func(a *App) {
		a.sender = s
	}
}

// WithCatalog serves c instead of opening Config.ContentPath.
func WithCatalog(c *content.Catalog) Option {
	return func(a *App) {
		a.Catalog = c
	}
}

// WithStore uses an already opened store instead of Config.DatabasePath.
func WithStore(s *Store) Option {
	return func(a *App) {
		a.Store = s
	}
}
