// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hirewire/jobboard/internal/admin"
	"github.com/hirewire/jobboard/internal/applications"
	applicationspostgres "github.com/hirewire/jobboard/internal/applications/postgres"
	"github.com/hirewire/jobboard/internal/companies"
	companiespostgres "github.com/hirewire/jobboard/internal/companies/postgres"
	"github.com/hirewire/jobboard/internal/config"
	"github.com/hirewire/jobboard/internal/directory"
	"github.com/hirewire/jobboard/internal/domain"
	"github.com/hirewire/jobboard/internal/guard"
	"github.com/hirewire/jobboard/internal/identity"
	"github.com/hirewire/jobboard/internal/identity/jwt"
	identitypostgres "github.com/hirewire/jobboard/internal/identity/postgres"
	"github.com/hirewire/jobboard/internal/jobs"
	jobspostgres "github.com/hirewire/jobboard/internal/jobs/postgres"
	"github.com/hirewire/jobboard/internal/pkg/ctxlog"
	"github.com/hirewire/jobboard/internal/pkg/httputil"
	"github.com/hirewire/jobboard/internal/pkg/metrics"
	"github.com/hirewire/jobboard/internal/pkg/postgres"
	"github.com/hirewire/jobboard/internal/savedjobs"
	savedjobspostgres "github.com/hirewire/jobboard/internal/savedjobs/postgres"
	"github.com/hirewire/jobboard/internal/version"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App represents the application instance.
type App struct {
	config        *config.Config
	logger        *slog.Logger
	db            *pgxpool.Pool
	adminDB       *pgxpool.Pool
	server        *http.Server
	metricsServer *http.Server
	metricsCancel context.CancelFunc
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	logger := initLogger(cfg.Log)

	if cfg.Database.Migrate {
		if err := postgres.Migrate(cfg.Database.URL); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	connectCtx, connectCancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer connectCancel()

	db, err := postgres.Connect(connectCtx, postgres.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnectAttempts: cfg.Database.ConnectAttempts,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// The admin surface issues privileged deletes over an elevated DSN when
	// one is configured; otherwise it shares the primary pool.
	adminDB := db
	if cfg.Database.AdminURL != "" {
		adminDB, err = postgres.Connect(connectCtx, postgres.Config{
			URL:             cfg.Database.AdminURL,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnectAttempts: cfg.Database.ConnectAttempts,
		})
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("connect to database with admin dsn: %w", err)
		}
	}

	metricsCtx, metricsCancel := context.WithCancel(context.Background())

	app := &App{
		config:        cfg,
		logger:        logger,
		db:            db,
		adminDB:       adminDB,
		metricsCancel: metricsCancel,
	}

	go app.collectDBMetrics(metricsCtx)

	app.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           app.setupRouter(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Metrics server on separate port
	metricsRouter := chi.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.Handler())

	app.metricsServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.MetricsPort),
		Handler:           metricsRouter,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return app, nil
}

// Run starts the HTTP servers.
func (a *App) Run() error {
	// Start metrics server in background
	go func() {
		a.logger.Info("starting metrics server",
			"host", a.config.Server.Host,
			"port", a.config.Server.MetricsPort,
		)
		if err := a.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("metrics server error", "error", err)
		}
	}()

	// Start main server
	a.logger.Info("starting server",
		"host", a.config.Server.Host,
		"port", a.config.Server.Port,
	)

	if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("shutting down servers")

	a.metricsCancel()

	// Shutdown both servers in parallel
	var wg sync.WaitGroup
	var errs []error
	var mu sync.Mutex

	wg.Add(2)

	go func() {
		defer wg.Done()
		if err := a.server.Shutdown(ctx); err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("shutdown server: %w", err))
			mu.Unlock()
		}
	}()

	go func() {
		defer wg.Done()
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			mu.Lock()
			errs = append(errs, fmt.Errorf("shutdown metrics server: %w", err))
			mu.Unlock()
		}
	}()

	wg.Wait()

	if a.adminDB != a.db {
		a.adminDB.Close()
	}
	a.db.Close()

	return errors.Join(errs...)
}

func (a *App) collectDBMetrics(ctx context.Context) {
	// Collect immediately on start
	a.recordPoolMetrics()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.recordPoolMetrics()
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) recordPoolMetrics() {
	metrics.RecordDBPoolMetrics("primary", a.db)
	if a.adminDB != a.db {
		metrics.RecordDBPoolMetrics("privileged", a.adminDB)
	}
}

// Router returns the HTTP handler for testing.
func (a *App) Router() http.Handler {
	return a.server.Handler
}

func (a *App) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Metrics middleware must be first to measure full request time
	r.Use(httputil.MetricsMiddleware)

	// CORS must be early to handle preflight requests before other middleware
	r.Use(httputil.CORSMiddleware(a.config.CORS.AllowedOrigins))
	r.Use(middleware.RequestID)
	r.Use(httputil.RequestLoggerMiddleware(a.logger))
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", a.healthzHandler)
	r.Get("/readyz", a.readyzHandler)
	r.Get("/version", a.versionHandler)

	directoryClient := directory.NewClient(directory.Config{
		BaseURL:   a.config.Directory.BaseURL,
		SecretKey: a.config.Directory.SecretKey,
		Timeout:   a.config.Directory.Timeout,
		RateLimit: a.config.Directory.RateLimit,
	})

	identityRepo := identitypostgres.NewRepository(a.db)
	jwtAuth := jwt.NewAuthenticator(jwt.Config{
		SecretKey:            a.config.JWT.SecretKey,
		AccessTokenDuration:  a.config.JWT.AccessTokenDuration,
		RefreshTokenDuration: a.config.JWT.RefreshTokenDuration,
	}, identityRepo)

	var roleSyncer identity.RoleSyncer
	if directoryClient.Configured() {
		roleSyncer = directoryClient
	}
	identityService := identity.NewService(identityRepo, jwtAuth, roleSyncer)
	identityHandler := identity.NewHandler(identityService, identity.CookieSettings{
		Secure:               a.config.Cookie.Secure,
		Domain:               a.config.Cookie.Domain,
		AccessTokenDuration:  a.config.JWT.AccessTokenDuration,
		RefreshTokenDuration: a.config.JWT.RefreshTokenDuration,
	})

	resolveOpts := directory.ResolveOptions{
		Concurrency: a.config.Directory.LookupConcurrency,
		Timeout:     a.config.Directory.LookupTimeout,
	}

	var resolver jobs.DirectoryResolver
	if directoryClient.Configured() {
		resolver = directoryClient
	}
	jobsRepo := jobspostgres.NewRepository(a.db)
	jobsService := jobs.NewService(jobsRepo, resolver, resolveOpts)
	jobsHandler := jobs.NewHandler(jobsService)

	companiesService := companies.NewService(companiespostgres.NewRepository(a.db))
	companiesHandler := companies.NewHandler(companiesService)

	savedJobsService := savedjobs.NewService(savedjobspostgres.NewRepository(a.db))
	savedJobsHandler := savedjobs.NewHandler(savedJobsService)

	applicationsService := applications.NewService(applicationspostgres.NewRepository(a.db), jobsRepo)
	applicationsHandler := applications.NewHandler(applicationsService)

	// Admin job operations run over the elevated pool and see every job
	// regardless of who posted it.
	adminJobsRepo := jobspostgres.NewRepository(a.adminDB)
	adminJobsService := jobs.NewService(adminJobsRepo, resolver, resolveOpts)
	adminHandler := admin.NewHandler(directoryClient, adminJobsRepo, adminJobsService)

	routeGuard := guard.New()
	guardHandler := guard.NewHandler(routeGuard, guard.ResolveFromContext)

	r.Route("/api", func(r chi.Router) {
		// Session annotation never rejects: the guard decides what an
		// anonymous or roleless session may reach.
		r.Use(httputil.SessionMiddleware(identityService))

		identityHandler.RegisterRoutes(r)
		guardHandler.RegisterRoutes(r)
		r.Get("/client-config", a.clientConfigHandler)

		r.Group(func(r chi.Router) {
			r.Use(httputil.AuthMiddleware(identityService))

			identityHandler.RegisterProtectedRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(routeGuard.Middleware(guard.JobsPath, guard.ResolveFromContext))
				jobsHandler.RegisterRoutes(r)
				companiesHandler.RegisterRoutes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(routeGuard.Middleware(guard.SavedJobsPath, guard.ResolveFromContext))
				savedJobsHandler.RegisterRoutes(r)
			})

			r.Group(func(r chi.Router) {
				// Guard first: roleless sessions are redirected to
				// onboarding and admin sessions captured to /admin
				// before the role check can turn them into a 403.
				r.Use(routeGuard.Middleware(guard.MyJobsPath, guard.ResolveFromContext))
				r.Use(httputil.RequireRole(domain.RoleCandidate))
				applicationsHandler.RegisterCandidateRoutes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(httputil.RequireRole(domain.RoleRecruiter))
				r.Use(routeGuard.Middleware(guard.PostJobPath, guard.ResolveFromContext))
				jobsHandler.RegisterRecruiterRoutes(r)
				companiesHandler.RegisterRecruiterRoutes(r)
				applicationsHandler.RegisterRecruiterRoutes(r)
			})

			r.Group(func(r chi.Router) {
				r.Use(httputil.RequireRole(domain.RoleAdmin))
				r.Use(routeGuard.Middleware(guard.AdminPath, guard.ResolveFromContext))
				adminHandler.RegisterRoutes(r)
			})
		})
	})

	return r
}

func (a *App) healthzHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.Text(w, http.StatusOK, "OK")
}

func (a *App) readyzHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.db.Ping(ctx); err != nil {
		ctxlog.FromContext(r.Context()).Error("readiness check failed", "error", err)
		httputil.Text(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	httputil.Text(w, http.StatusOK, "OK")
}

// clientConfigHandler hands the SPA the publishable half of the directory
// credentials. The secret key never leaves the server.
func (a *App) clientConfigHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.Success(w, http.StatusOK, map[string]string{
		"directory_publishable_key": a.config.Directory.PublishableKey,
	})
}

func (a *App) versionHandler(w http.ResponseWriter, _ *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]string{
		"version":    version.Version,
		"commit":     version.GitCommit,
		"build_date": version.BuildDate,
	})
}

func initLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
