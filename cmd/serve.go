package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"sitegen/api"
	handlers "sitegen/internal/api"
)

func newServeCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation pipeline over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*configDir, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return a.serve()
		},
	}
}

func (a *app) serve() error {
	logger := a.logger

	// Select Gin mode based on APP_ENV.
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		logger.Info("running in gin debug mode")
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	apiHandler := handlers.NewAPIHandler(a.newBuilder(nil), a.loader, logger)
	api.RegisterRoutes(router, apiHandler)

	server := &http.Server{
		Addr:    a.cfg.ServerAddress,
		Handler: router,
		// A full run makes many sequential model calls.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting API server", "address", a.cfg.ServerAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutting down server", "signal", sig.String())
	case err, ok := <-serverErr:
		if ok {
			logger.Error("API server listen error", "error", err)
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server forced shutdown", "error", err)
		return err
	}
	logger.Info("API server gracefully stopped")
	return nil
}
