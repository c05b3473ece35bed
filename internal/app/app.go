package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/vadim/linkedin-mcp/internal/config"
	httpcontroller "github.com/vadim/linkedin-mcp/internal/controller/http"
	mcpcontroller "github.com/vadim/linkedin-mcp/internal/controller/mcp"
	authdao "github.com/vadim/linkedin-mcp/internal/domain/auth/dao"
	authpolicy "github.com/vadim/linkedin-mcp/internal/domain/auth/policy"
	authservice "github.com/vadim/linkedin-mcp/internal/domain/auth/service"
	"github.com/vadim/linkedin-mcp/internal/domain/post/policy"
	"github.com/vadim/linkedin-mcp/internal/domain/post/scheduler"
	"github.com/vadim/linkedin-mcp/internal/domain/post/service"
	settingsdao "github.com/vadim/linkedin-mcp/internal/domain/settings/dao"
	settingsservice "github.com/vadim/linkedin-mcp/internal/domain/settings/service"
	"github.com/vadim/linkedin-mcp/internal/httpx/oauth"
	"github.com/vadim/linkedin-mcp/internal/httpx/upstream/linkedin"
	"github.com/vadim/linkedin-mcp/internal/metrics"
	"github.com/vadim/linkedin-mcp/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// App is the main application container
type App struct {
	cfg     config.Config
	version string
	logger  *slog.Logger
	metrics *metrics.Metrics

	store    *postStore
	callback *oauth.CallbackServer

	// Domain policies and services (interfaces for transports)
	postPolicy      *policy.Policy
	authPolicy      *authpolicy.Policy
	settingsService *settingsservice.Service

	mcpServer  *mcpcontroller.Server
	router     *chi.Mux
	httpServer *http.Server

	// Scheduler for publishing due posts, nil when disabled
	scheduler *scheduler.Scheduler
}

// NewApp creates and initializes the application
func NewApp(ctx context.Context, cfg config.Config, version string) (*App, error) {
	// stdout carries the protocol in stdio mode
	logOut := os.Stdout
	if cfg.MCP.Transport == config.TransportStdio {
		logOut = os.Stderr
	}
	logger, err := NewLogger(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}

	app := &App{
		cfg:     cfg,
		version: version,
		logger:  logger,
		metrics: metrics.New(),
	}

	if err := app.initInfrastructure(ctx); err != nil {
		return nil, fmt.Errorf("initializing infrastructure: %w", err)
	}

	if err := app.initDomains(ctx); err != nil {
		app.store.close()
		return nil, fmt.Errorf("initializing domains: %w", err)
	}

	app.mcpServer = mcpcontroller.NewServer(mcpcontroller.Config{
		Posts:    app.postPolicy,
		Settings: app.settingsService,
		Auth:     app.authPolicy,
		Metrics:  app.metrics,
		Logger:   logger,
		Version:  version,
	})

	if cfg.MCP.Transport == config.TransportHTTP {
		if err := app.registerRoutes(); err != nil {
			app.store.close()
			return nil, fmt.Errorf("registering routes: %w", err)
		}
		app.httpServer = &http.Server{
			Addr:         cfg.Server.Address(),
			Handler:      app.router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		}
	}

	if cfg.Scheduler.Enabled {
		app.scheduler, err = scheduler.New(app.postPolicy, scheduler.Config{
			Spec:     cfg.Scheduler.Spec,
			Timezone: cfg.Scheduler.Timezone,
			Timeout:  cfg.Scheduler.Timeout,
		}, logger, app.metrics)
		if err != nil {
			app.store.close()
			return nil, fmt.Errorf("initializing scheduler: %w", err)
		}
	}

	return app, nil
}

// initInfrastructure opens the post store and creates its schema
func (a *App) initInfrastructure(ctx context.Context) error {
	store, err := openPostStore(ctx, a.cfg.Storage)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", a.cfg.Storage.Driver, err)
	}
	if err := store.migrate(ctx); err != nil {
		store.close()
		return err
	}
	a.store = store

	a.logger.Info("post store ready", "driver", a.cfg.Storage.Driver, "data_dir", a.cfg.Storage.DataDir)
	return nil
}

// initDomains initializes domain layers (DAO, Service, Policy)
func (a *App) initDomains(ctx context.Context) error {
	dataDir := a.cfg.Storage.DataDir

	a.settingsService = settingsservice.New(settingsdao.NewSettingsJSON(dataDir))
	authService := authservice.New(authdao.NewCredentialsJSON(dataDir))

	// Initialize LinkedIn client
	liClient := linkedin.New(
		linkedin.WithBaseURL(a.cfg.LinkedIn.BaseURL),
		linkedin.WithAPIVersion(a.cfg.LinkedIn.APIVersion),
	)

	a.callback = oauth.NewCallbackServer(
		a.cfg.OAuth.CallbackHost,
		a.cfg.OAuth.CallbackPort,
		a.cfg.OAuth.CallbackPath,
		a.logger,
		oauth.WithExpiry(a.cfg.OAuth.WaitTimeout),
	)

	// nil keeps linkedin_authenticate reporting the missing app credentials
	var exchanger authpolicy.TokenExchanger
	if a.cfg.LinkedIn.Configured() {
		exchanger = linkedin.OAuthConfig(linkedin.OAuthSettings{
			ClientID:     a.cfg.LinkedIn.ClientID,
			ClientSecret: a.cfg.LinkedIn.ClientSecret,
			RedirectURL:  a.callback.RedirectURL(),
			AuthURL:      a.cfg.LinkedIn.AuthURL,
			TokenURL:     a.cfg.LinkedIn.TokenURL,
			Scopes:       a.cfg.LinkedIn.Scopes,
		})
	} else {
		a.logger.Warn("LINKEDIN_CLIENT_ID or LINKEDIN_CLIENT_SECRET not set, authentication is disabled")
	}
	a.authPolicy = authpolicy.New(authService, exchanger, a.callback, liClient)

	var exporter policy.Exporter
	if a.cfg.S3.Enabled {
		s3, err := storage.NewS3Exporter(storage.S3Config{
			Endpoint:        a.cfg.S3.Endpoint,
			AccessKeyID:     a.cfg.S3.AccessKeyID,
			SecretAccessKey: a.cfg.S3.SecretAccessKey,
			Bucket:          a.cfg.S3.Bucket,
			Region:          a.cfg.S3.Region,
			Prefix:          a.cfg.S3.Prefix,
			PublicURL:       a.cfg.S3.PublicURL,
		})
		if err != nil {
			return fmt.Errorf("creating S3 exporter: %w", err)
		}
		exporter = s3
	}

	postService := service.New(a.store.repo)
	a.postPolicy = policy.New(
		postService,
		&linkedinPublisherAdapter{linkedin.NewPublisher(liClient)},
		authService,
		a.settingsService,
		exporter,
	)

	return nil
}

// registerRoutes registers all HTTP routes
func (a *App) registerRoutes() error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httpcontroller.Metrics(a.metrics))
	a.router = r

	// Health check
	r.Get("/healthz", a.healthHandler)
	r.Get("/readyz", a.readyHandler)
	r.Handle("/metrics", a.metrics.Handler())

	// Swagger UI documentation
	swaggerHandler, err := httpcontroller.NewSwaggerHandler("LinkedIn MCP API", OpenAPISpec)
	if err != nil {
		return err
	}
	swaggerHandler.RegisterRoutes(r)

	// MCP over streamable HTTP
	r.Handle(a.cfg.MCP.Path, a.mcpServer.HTTPHandler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Logger)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(30 * time.Second))

			httpcontroller.NewPostHandler(a.postPolicy, a.metrics).RegisterRoutes(r)
			httpcontroller.NewContentHandler(a.postPolicy).RegisterRoutes(r)
			httpcontroller.NewSettingsHandler(a.settingsService).RegisterRoutes(r)
			httpcontroller.NewExportHandler(a.postPolicy).RegisterRoutes(r)
		})

		// completing authentication waits for the browser redirect
		httpcontroller.NewAuthHandler(a.authPolicy).RegisterRoutes(r)
	})

	return nil
}

// healthHandler handles health check requests
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// readyHandler reports whether the post store is reachable
func (a *App) readyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.store.ping(ctx); err != nil {
		a.logger.Warn("readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unavailable"}`))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}

// Handler returns the HTTP handler, nil in stdio mode
func (a *App) Handler() http.Handler {
	if a.router == nil {
		return nil
	}
	return a.router
}

// Run serves the configured transport and blocks until the client disconnects,
// a shutdown signal arrives or ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if a.scheduler != nil {
		a.scheduler.Start(ctx)
	}

	g, gctx := errgroup.WithContext(ctx)

	switch a.cfg.MCP.Transport {
	case config.TransportHTTP:
		g.Go(func() error {
			a.logger.Info("starting HTTP server", "addr", a.cfg.Server.Address(), "mcp_path", a.cfg.MCP.Path)
			if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down HTTP server: %w", err)
			}
			return nil
		})

	default:
		g.Go(func() error {
			err := a.mcpServer.Run(gctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	err := g.Wait()
	a.Shutdown()
	return err
}

// Shutdown stops background work and releases resources
func (a *App) Shutdown() {
	a.logger.Info("shutting down...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	a.callback.Close()
	a.store.close()

	a.logger.Info("shutdown complete")
}

// linkedinPublisherAdapter adapts linkedin.Publisher to policy.LinkedInPublisher
type linkedinPublisherAdapter struct {
	publisher *linkedin.Publisher
}

func (a *linkedinPublisherAdapter) Publish(ctx context.Context, in policy.PublishInput) (*policy.PublishOutput, error) {
	out, err := a.publisher.Publish(ctx, linkedin.PublishInput{
		AccessToken: in.AccessToken,
		PersonURN:   in.PersonURN,
		Post:        in.Post,
	})
	if err != nil {
		return nil, err
	}
	return &policy.PublishOutput{PostURN: out.PostURN}, nil
}
