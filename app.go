// Package glasscube is a portfolio and blog site built with Go, Echo, and
// templ. It reads blogs and projects from an external content API, renders
// them with localized pages, and hosts the /yoz/ editor that writes back to
// the same API.
package glasscube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/glasscube/glasscube/api"
	"github.com/glasscube/glasscube/locale"
	"github.com/glasscube/glasscube/mailer"
	"github.com/glasscube/glasscube/views"
)

// App is the central glasscube application. It wires together the content
// API client, caches, handlers, middleware, and views.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	API    *api.Client
	Views  *views.Views
	Locale *locale.Bundle
	Feed   *FeedCache
	Mailer mailer.Sender
	Logger *slog.Logger

	writeLimiter *WriteLimiter
	customRoutes []func(*App)
	staticDir    string

	setupOnce sync.Once
	setupErr  error
}

// New creates a new glasscube App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return a
}

// Setup builds the collaborators, middleware and routes. It runs once; Start
// and Handler call it.
func (a *App) Setup() error {
	a.setupOnce.Do(func() {
		a.setupErr = a.setup()
	})
	return a.setupErr
}

func (a *App) setup() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("glasscube: SessionSecret is required")
	}

	if a.API == nil {
		client, err := api.NewClient(a.Config.APIURL, a.Config.APIOptions(a.Logger)...)
		if err != nil {
			return fmt.Errorf("glasscube: init api client: %w", err)
		}
		a.API = client
	}

	bundle, err := locale.Load()
	if err != nil {
		return fmt.Errorf("glasscube: init locale: %w", err)
	}
	a.Locale = bundle

	v, err := views.New(a.API.BaseURL())
	if err != nil {
		return fmt.Errorf("glasscube: init views: %w", err)
	}
	a.Views = v

	a.Feed = NewFeedCache(a.API, a.Config.FeedTTL)
	a.writeLimiter = NewWriteLimiter(10, time.Minute)

	if a.Mailer == nil {
		a.Mailer = a.newMailer()
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) newMailer() mailer.Sender {
	smtp := a.Config.SMTP
	if smtp.Host == "" || a.Config.ContactRecipient == "" {
		return mailer.LogSender{Logger: a.Logger}
	}
	sender := smtp.Sender
	if sender == "" {
		sender = a.Config.ContactRecipient
	}
	return mailer.NewSMTPSender(smtp.Host, smtp.Port, smtp.Username, smtp.Password, sender, a.Config.ContactRecipient)
}

// Handler returns the configured HTTP handler without starting a listener.
func (a *App) Handler() (http.Handler, error) {
	if err := a.Setup(); err != nil {
		return nil, err
	}
	return a.Echo, nil
}

// Start sets the app up and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleLanding)
	e.GET("/about/", a.handleAbout)
	e.GET("/blog/", a.handleBlogs)
	e.GET("/blog/:slug/", a.handleBlog)
	e.GET("/project/", a.handleProjects)
	e.GET("/project/:slug/", a.handleProject)
	e.GET("/contact/", a.handleContact)
	e.POST("/contact/", a.handleContactSubmit)
	e.POST("/settings/", a.handleSettings)

	yoz := e.Group("/yoz")
	yoz.GET("/", a.handleDashboard)
	yoz.GET("/blog/new/", a.handleBlogNew)
	yoz.POST("/blog/", a.handleBlogSubmit)
	yoz.GET("/blog/:slug/edit/", a.handleBlogEdit)
	yoz.POST("/blog/:slug/edit/", a.handleBlogSubmit)
	yoz.GET("/project/new/", a.handleProjectNew)
	yoz.POST("/project/", a.handleProjectSubmit)
	yoz.GET("/project/:slug/edit/", a.handleProjectEdit)
	yoz.POST("/project/:slug/edit/", a.handleProjectSubmit)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.writeLimiter != nil {
		a.writeLimiter.Stop()
	}
	if a.Feed != nil {
		a.Feed.Flush()
	}
	return nil
}
