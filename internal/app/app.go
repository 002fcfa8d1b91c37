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

	"cms-admin/internal/auth"
	"cms-admin/internal/config"
	"cms-admin/internal/handler"
	"cms-admin/internal/middleware"
	"cms-admin/internal/resource"
	"cms-admin/internal/router"
	"cms-admin/internal/session"
	"cms-admin/internal/toast"
	"cms-admin/internal/upstream"
	"cms-admin/internal/view"
)

type App struct {
	server *http.Server
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())

	// Every upstream call picks up the caller's token from the request
	// context, so one client serves all sessions.
	client := upstream.NewClient(cfg.APIBaseURL, cfg.UpstreamTimeout, session.TokenFromContext)
	slog.Info("upstream configured", "base_url", cfg.APIBaseURL)

	authService := auth.NewService(client, sessions)
	guard := middleware.NewGuard(sessions, authService)

	toasts := toast.NewStore()
	base := handler.NewBase(renderer, toasts)

	blogService := resource.NewBlogService(client)
	faqService := resource.NewFaqService(client)
	blogCategories := resource.NewBlogCategoryService(client)
	faqCategories := resource.NewFaqCategoryService(client)
	fileService := resource.NewFileService(client, cfg.MaxUploadSize)

	appRouter := router.New(cfg, guard, router.Handlers{
		Auth:       handler.NewAuthHandler(base, authService),
		Dashboard:  handler.NewDashboardHandler(base),
		Blogs:      handler.NewBlogHandler(base, blogService, blogCategories),
		Categories: handler.NewCategoryHandler(base, blogCategories, faqCategories),
		Faqs:       handler.NewFaqHandler(base, faqService, faqCategories),
		Files:      handler.NewFileHandler(base, fileService),
		Toasts:     handler.NewToastHandler(base),
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      appRouter,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  cfg.ServerIdleTimeout,
	}

	return &App{server: server}, nil
}

func (a *App) Run() error {
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if serveErr := a.server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("server failed", "error", serveErr)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
