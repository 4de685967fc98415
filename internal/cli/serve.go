package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/jpassword/jpassword-go/internal/generator"
	"github.com/jpassword/jpassword-go/internal/handler"
	"github.com/jpassword/jpassword-go/internal/middleware"
	"github.com/jpassword/jpassword-go/internal/service"
	"github.com/jpassword/jpassword-go/internal/widget"
)

func newServeCommand(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generator form and JSON API over HTTP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				a.cfg.Port = port
			}
			src, err := a.source(false)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			limiter := middleware.NewRateLimiter(a.cfg.RateLimitRPS, a.cfg.RateLimitBurst)
			go limiter.Run(ctx)

			return a.serve(ctx, newRouter(a, src, limiter))
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides PORT)")
	return cmd
}

func newRouter(a *app, src generator.Source, limiter *middleware.RateLimiter) http.Handler {
	// One lock for both handlers: they draw from the same source.
	src = generator.Locked(src)
	genHandler := handler.NewGeneratorHandler(service.NewGeneratorService(src), a.logger)
	widgetHandler := handler.NewWidgetHandler(widget.Reducer{Source: src, CopiedReset: a.cfg.CopiedReset}, a.logger)

	r := chi.NewRouter()
	r.Use(middleware.Logger(a.logger))

	r.Get("/health", handler.HandleHealth)
	r.Get("/", widgetHandler.HandlePage)

	r.Group(func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Post("/", widgetHandler.HandleAction)
		r.Get("/api/v1/generate", genHandler.HandleGenerateQuery)
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
	})

	return r
}

func (a *app) serve(ctx context.Context, h http.Handler) error {
	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "port", a.cfg.Port, "env", a.cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			a.logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("server forced shutdown", "error", err)
		return err
	}

	a.logger.Info("server stopped")
	return nil
}
