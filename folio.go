// Package folio serves a single-page developer portfolio built with Go, Echo
// and templ: profile, projects, skills, blog teasers and a contact form, with
// an optional SQLite inbox and admin view for received messages.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	gommonlog "github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"

	"github.com/alexchen-dev/folio/contact"
	"github.com/alexchen-dev/folio/content"
)

const sweepInterval = time.Minute

// App is the central folio application. It wires together the content
// catalog, contact desk, optional store, handlers and middleware.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Catalog *content.Catalog
	Store   *Store
	Desk    *contact.Desk
	Views   ViewFuncs

	sender        contact.Sender
	docs          *DocCache
	loginLimiter  *LoginLimiter
	submitLimiter *SubmitLimiter
	watcher       *content.Watcher
	customRoutes  []func(*App)
	staticDir     string
	ownsStore     bool
	ready         bool
}

// New creates a folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     DefaultViews(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens content, storage and delivery and registers middleware and
// routes. Start calls it; tests call it directly and drive a.Echo.
func (a *App) Init() error {
	if a.ready {
		return nil
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}
	a.Echo.Logger.SetLevel(parseLevel(a.Config.LogLevel))

	if a.Catalog == nil {
		cat, err := content.OpenCatalog(a.Config.ContentPath)
		if err != nil {
			return fmt.Errorf("folio: load content: %w", err)
		}
		a.Catalog = cat
	}
	a.Config.fillFromSite(a.Catalog.Get())

	if a.Store == nil && a.Config.DatabasePath != "" {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("folio: init store: %w", err)
		}
		a.Store = store
		a.ownsStore = true
	}
	if a.Config.AdminPassword != "" && a.Store == nil {
		return fmt.Errorf("folio: admin_password requires database_path")
	}

	if a.sender == nil {
		sender, err := newSender(a.Config, a.Store)
		if err != nil {
			return err
		}
		a.sender = sender
	}

	if a.Config.WatchContent && a.Catalog.Path() != "" {
		w, err := content.NewWatcher(a.Catalog, a.Echo.Logger)
		if err != nil {
			return fmt.Errorf("folio: watch content: %w", err)
		}
		a.watcher = w
	}

	a.Desk = contact.NewDesk(a.Config.FormTTL.Duration)
	a.docs = NewDocCache(a.Catalog, a.Config.FeedCacheTTL.Duration)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.submitLimiter = NewSubmitLimiter(a.Config.ContactPerMinute, a.Config.ContactBurst)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start initializes the app and serves until ctx is cancelled or the
// server fails, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout.Duration)
		defer cancel()
		return a.Echo.Shutdown(sctx)
	})
	g.Go(func() error {
		return a.Desk.Run(ctx, sweepInterval)
	})
	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case now := <-ticker.C:
				a.loginLimiter.Sweep(now)
				a.submitLimiter.Sweep(now)
			}
		}
	})
	if a.watcher != nil {
		g.Go(func() error {
			return a.watcher.Run(ctx)
		})
	}
	return g.Wait()
}

func (a *App) adminEnabled() bool {
	return a.Store != nil && a.Config.AdminPassword != ""
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets ship embedded; anything else under /public comes
	// from the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS))))
	e.GET("/public/folio.css", embeddedHandler)
	e.GET("/public/nav-loader.js", embeddedHandler)
	e.Static("/public", a.staticDir)

	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/healthz", a.handleHealth)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/resume.pdf", a.handleResume)
	e.GET("/", a.handleHome)
	e.POST("/contact/", a.handleContact)
	e.POST("/newsletter/", a.handleNewsletter)

	if !a.adminEnabled() {
		return
	}
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/messages/:id/read/", a.handleMarkRead, requireAdmin)
	e.DELETE("/admin/messages/:id/", a.handleDeleteMessage, requireAdmin)
	e.GET("/admin/subscribers/", a.handleSubscribers, requireAdmin)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
	}
	if a.Store != nil && a.ownsStore {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}

func parseLevel(s string) gommonlog.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return gommonlog.DEBUG
	case "warn", "warning":
		return gommonlog.WARN
	case "error":
		return gommonlog.ERROR
	case "off":
		return gommonlog.OFF
	default:
		return gommonlog.INFO
	}
}
