// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/scms-go/internal/ai"
	"github.com/olegiv/scms-go/internal/analytics"
	"github.com/olegiv/scms-go/internal/cache"
	"github.com/olegiv/scms-go/internal/config"
	"github.com/olegiv/scms-go/internal/content"
	"github.com/olegiv/scms-go/internal/geoip"
	"github.com/olegiv/scms-go/internal/handler"
	"github.com/olegiv/scms-go/internal/logging"
	"github.com/olegiv/scms-go/internal/middleware"
	"github.com/olegiv/scms-go/internal/render"
	"github.com/olegiv/scms-go/internal/router"
	"github.com/olegiv/scms-go/internal/scheduler"
	"github.com/olegiv/scms-go/internal/service"
	"github.com/olegiv/scms-go/internal/session"
	"github.com/olegiv/scms-go/internal/store"
	"github.com/olegiv/scms-go/internal/version"
	"github.com/olegiv/scms-go/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// crudHandlers defines the standard CRUD handler methods.
type crudHandlers struct {
	List     http.HandlerFunc
	NewForm  http.HandlerFunc
	Create   http.HandlerFunc
	EditForm http.HandlerFunc
	Update   http.HandlerFunc
	Delete   http.HandlerFunc
	Reorder  http.HandlerFunc
}

// registerCRUD registers the console routes of a resource.
// Routes: GET /, GET /new, POST /, GET /{id}, POST /{id}, POST /{id}/delete, POST /reorder
func registerCRUD(r chi.Router, base string, h crudHandlers) {
	r.Get(base, h.List)
	if h.NewForm != nil {
		r.Get(base+handler.RouteSuffixNew, h.NewForm)
	}
	r.Post(base, h.Create)
	if h.Reorder != nil {
		r.Post(base+handler.RouteSuffixReorder, h.Reorder)
	}
	r.Get(base+handler.RouteParamID, h.EditForm)
	r.Post(base+handler.RouteParamID, h.Update) // HTML forms can't send PUT
	r.Post(base+handler.RouteParamID+"/delete", h.Delete)
}

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "sCMS - School website and content console\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_SESSION_SECRET       Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_DB_PATH              SQLite database path (default: ./data/scms.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_CANONICAL_REDIRECTS  Redirect to canonical page URLs (default: true)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_REDIS_URL            Redis URL for the shared cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_AI_API_KEY           Key for the AI drafting endpoint (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_GEOIP_DB_PATH        GeoLite2-Country.mmdb for visit statistics (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SCMS_DO_SEED              Create the first admin and default content (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	if *showVersion {
		_, _ = fmt.Println(versionInfo.String())
		os.Exit(0)
	}

	if err := run(versionInfo); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(versionInfo version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db, store.SeedOptions{
			AdminEmail:    cfg.AdminEmail,
			AdminPassword: cfg.AdminPassword,
		}); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		slog.Info("database seeded", "admin", cfg.AdminEmail)
	}

	sessionManager := session.New(db, !cfg.IsDevelopment())
	defer sessionManager.Close()
	slog.Info("session manager initialized")

	sharedCache, cacheInfo, err := cache.NewCache(cache.Config{
		RedisURL:         cfg.RedisURL,
		Prefix:           cfg.CachePrefix,
		DefaultTTL:       cfg.CacheTTLDuration(),
		MaxSize:          cfg.CacheMaxSize,
		FallbackToMemory: true,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := sharedCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cacheInfo.FellBack {
		slog.Warn("cache initialized", "backend", cacheInfo.Backend, "note", "Redis unavailable, using fallback",
			"error", cacheInfo.FallbackErr, "category", "cache")
	} else {
		slog.Info("cache initialized", "backend", cacheInfo.Backend, "url", cacheInfo.RedisURL)
	}

	repo := service.NewRepository(db, cfg.PostListLimit)
	eventService := service.NewEventService(db)

	// Public content: one snapshot for every page, reloaded after writes.
	orchestrator := content.NewOrchestrator(repo, logger)
	details := content.NewDetailLoader(repo, sharedCache, logger)
	defer details.Wait()
	unsubscribe := orchestrator.Subscribe(func(*content.State) {
		details.Invalidate(context.Background())
	})
	defer unsubscribe()

	state := orchestrator.Refresh(ctx, true)
	slog.Info("content loaded", "posts", len(state.Posts), "blocks", len(state.Blocks))

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("failed to open GeoIP database", "path", cfg.GeoIPDBPath, "error", err, "category", "config")
	}
	defer func() { _ = geo.Close() }()

	tracker := analytics.NewTracker(db, geo, !cfg.IsDevelopment(), logger)
	defer tracker.Wait()
	counter := analytics.NewCounter(db, sharedCache, logger)

	sched := scheduler.New(logger)
	if err := scheduler.RegisterMaintenance(sched, db, eventService, geo); err != nil {
		return fmt.Errorf("registering maintenance jobs: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	drafter := ai.NewOpenAIDrafter(ai.Config{
		APIKey:  cfg.AIAPIKey,
		BaseURL: cfg.AIBaseURL,
		Model:   cfg.AIModel,
		Timeout: cfg.AITimeoutDuration(),
	}, logger)
	slog.Info("ai drafting", "enabled", drafter.Enabled())

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS: templatesFS,
		Sessions:    sessionManager,
		IsDev:       cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	deps := handler.Deps{
		Repo:     repo,
		Events:   eventService,
		Renderer: renderer,
		Sessions: sessionManager,
		Content:  orchestrator,
		Logger:   logger,
	}

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()
	publicRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)

	authHandler := handler.NewAuthHandler(deps, loginProtection)
	adminHandler := handler.NewAdminHandler(deps, counter)
	newsHandler := handler.NewNewsHandler(deps, drafter)
	categoriesHandler := handler.NewCategoriesHandler(deps)
	introHandler := handler.NewIntroHandler(deps)
	blocksHandler := handler.NewBlocksHandler(deps)
	documentsHandler := handler.NewDocumentsHandler(deps)
	galleryHandler := handler.NewGalleryHandler(deps)
	staffHandler := handler.NewStaffHandler(deps)
	videosHandler := handler.NewVideosHandler(deps)
	usersHandler := handler.NewUsersHandler(deps)
	menuHandler := handler.NewMenuHandler(deps)
	configHandler := handler.NewConfigHandler(deps)
	eventsHandler := handler.NewEventsHandler(deps)
	schedulerHandler := handler.NewSchedulerHandler(deps, sched)
	healthHandler := handler.NewHealthHandler(db, orchestrator, sharedCache, versionInfo.Version)
	seoHandler := handler.NewSEOHandler(orchestrator, cfg.IsDevelopment())

	publicHandler := handler.NewPublicHandler(deps,
		router.Navigator{CanUseHistoryAPI: cfg.CanonicalRedirects},
		details, counter, authHandler)

	// Console screens addressed as /?page=admin-<name> render in place.
	publicHandler.HandleConsole(router.PageAdminDashboard, adminHandler.Dashboard)
	publicHandler.HandleConsole(router.PageAdminNews, newsHandler.List)
	publicHandler.HandleConsole(router.PageAdminCategories, categoriesHandler.List)
	publicHandler.HandleConsole(router.PageAdminIntro, introHandler.List)
	publicHandler.HandleConsole(router.PageAdminBlocks, blocksHandler.List)
	publicHandler.HandleConsole(router.PageAdminDocs, documentsHandler.List)
	publicHandler.HandleConsole(router.PageAdminGallery, galleryHandler.List)
	publicHandler.HandleConsole(router.PageAdminStaff, staffHandler.List)
	publicHandler.HandleConsole(router.PageAdminVideos, videosHandler.List)
	publicHandler.HandleConsole(router.PageAdminUsers, usersHandler.List)
	publicHandler.HandleConsole(router.PageAdminMenu, menuHandler.List)
	publicHandler.HandleConsole(router.PageAdminSettings, configHandler.Form)
	publicHandler.HandleConsole(router.PageAdminEvents, eventsHandler.List)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))
	r.Use(middleware.RequestPath)

	// Health, crawler files and static assets need neither session nor CSRF.
	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteHealth+"/live", healthHandler.Liveness)
	r.Get(handler.RouteHealth+"/ready", healthHandler.Readiness)
	r.Get(handler.RouteRobots, seoHandler.Robots)
	r.Get(handler.RouteSitemap, seoHandler.Sitemap)
	r.Handle(handler.RouteStatic, http.FileServerFS(web.Static))

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment()))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(csrfMiddleware)
		r.Use(middleware.LoadUser(sessionManager, repo))

		// Public site
		r.With(tracker.Middleware).Get(handler.RouteRoot, publicHandler.Page)

		// Auth routes
		r.Group(func(r chi.Router) {
			r.Use(publicRateLimiter.Middleware())
			r.Get(handler.RouteLogin, authHandler.LoginForm)
			r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)
			r.Post(handler.RouteLogout, authHandler.Logout)
		})

		r.Route(handler.RouteAdmin, func(r chi.Router) {
			// /admin renders the login form or sends a signed-in user to the dashboard.
			r.Get(handler.RouteRoot, publicHandler.Page)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireEditor(eventService))

				r.Post(handler.RouteRefresh, adminHandler.Refresh)

				registerCRUD(r, handler.RouteNews, crudHandlers{
					List:     newsHandler.List,
					NewForm:  newsHandler.NewForm,
					Create:   newsHandler.Create,
					EditForm: newsHandler.EditForm,
					Update:   newsHandler.Update,
					Delete:   newsHandler.Delete,
				})
				r.Post(handler.RouteNews+handler.RouteSuffixDraft, newsHandler.Draft)

				registerCRUD(r, handler.RouteCategories, crudHandlers{
					List:     categoriesHandler.List,
					Create:   categoriesHandler.Create,
					EditForm: categoriesHandler.EditForm,
					Update:   categoriesHandler.Update,
					Delete:   categoriesHandler.Delete,
					Reorder:  categoriesHandler.Reorder,
				})

				registerCRUD(r, handler.RouteIntro, crudHandlers{
					List:     introHandler.List,
					Create:   introHandler.Create,
					EditForm: introHandler.EditForm,
					Update:   introHandler.Update,
					Delete:   introHandler.Delete,
					Reorder:  introHandler.Reorder,
				})

				registerCRUD(r, handler.RouteBlocks, crudHandlers{
					List:     blocksHandler.List,
					NewForm:  blocksHandler.NewForm,
					Create:   blocksHandler.Create,
					EditForm: blocksHandler.EditForm,
					Update:   blocksHandler.Update,
					Delete:   blocksHandler.Delete,
					Reorder:  blocksHandler.Reorder,
				})
				r.Post(handler.RouteBlocks+handler.RouteParamID+handler.RouteSuffixMove, blocksHandler.Move)

				registerCRUD(r, handler.RouteDocuments, crudHandlers{
					List:     documentsHandler.List,
					NewForm:  documentsHandler.NewForm,
					Create:   documentsHandler.Create,
					EditForm: documentsHandler.EditForm,
					Update:   documentsHandler.Update,
					Delete:   documentsHandler.Delete,
				})
				registerCRUD(r, handler.RouteDocCategories, crudHandlers{
					List:     documentsHandler.Categories,
					Create:   documentsHandler.CreateCategory,
					EditForm: documentsHandler.EditCategoryForm,
					Update:   documentsHandler.UpdateCategory,
					Delete:   documentsHandler.DeleteCategory,
					Reorder:  documentsHandler.ReorderCategories,
				})

				registerCRUD(r, handler.RouteGallery, crudHandlers{
					List:     galleryHandler.List,
					NewForm:  galleryHandler.NewForm,
					Create:   galleryHandler.Create,
					EditForm: galleryHandler.EditForm,
					Update:   galleryHandler.Update,
					Delete:   galleryHandler.Delete,
				})
				r.Post(handler.RouteGallery+handler.RouteParamID+handler.RouteSuffixImages, galleryHandler.AddImage)
				r.Post(handler.RouteGallery+handler.RouteParamID+handler.RouteImageID+"/delete", galleryHandler.DeleteImage)

				registerCRUD(r, handler.RouteStaff, crudHandlers{
					List:     staffHandler.List,
					Create:   staffHandler.Create,
					EditForm: staffHandler.EditForm,
					Update:   staffHandler.Update,
					Delete:   staffHandler.Delete,
					Reorder:  staffHandler.Reorder,
				})

				registerCRUD(r, handler.RouteVideos, crudHandlers{
					List:     videosHandler.List,
					Create:   videosHandler.Create,
					EditForm: videosHandler.EditForm,
					Update:   videosHandler.Update,
					Delete:   videosHandler.Delete,
					Reorder:  videosHandler.Reorder,
				})
			})

			// Admin-only screens
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(eventService))

				registerCRUD(r, handler.RouteUsers, crudHandlers{
					List:     usersHandler.List,
					NewForm:  usersHandler.NewForm,
					Create:   usersHandler.Create,
					EditForm: usersHandler.EditForm,
					Update:   usersHandler.Update,
					Delete:   usersHandler.Delete,
				})

				registerCRUD(r, handler.RouteMenu, crudHandlers{
					List:     menuHandler.List,
					Create:   menuHandler.Create,
					EditForm: menuHandler.EditForm,
					Update:   menuHandler.Update,
					Delete:   menuHandler.Delete,
					Reorder:  menuHandler.Reorder,
				})

				r.Get(handler.RouteSettings, configHandler.Form)
				r.Post(handler.RouteSettings, configHandler.Update)
				r.Get(handler.RouteEvents, eventsHandler.List)
				r.Get(handler.RouteScheduler, schedulerHandler.List)
				r.Post(handler.RouteScheduler+"/{name}/run", schedulerHandler.Trigger)
			})
		})

		r.NotFound(publicHandler.NotFound)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
