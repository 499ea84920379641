package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/study-manager/study-manager/app/core"
	"github.com/study-manager/study-manager/app/response"
	"github.com/study-manager/study-manager/cmd/service/handler"
	"github.com/study-manager/study-manager/cmd/service/middleware"
	"github.com/study-manager/study-manager/pkg/safe"
)

func serve(core *core.Core) error {
	httpSrv := &handler.HttpSrv{
		Core:   core,
		Engine: core.HttpEngine(),
	}
	setupHttpRouter(httpSrv)

	srv := &http.Server{
		Addr:    core.Cfg().Addr,
		Handler: core.HttpEngine(),
	}

	errCh := safe.Go("http.server", func() error {
		slog.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	sigs := make(chan os.Signal, 1)
	// 监听 os.Interrupt (Ctrl+C) 和 syscall.SIGTERM (kill)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case err := <-errCh:
		if err != nil {
			core.Close()
			return err
		}
	case sig := <-sigs:
		slog.Info("shutting down http server", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown http server", slog.String("error", err.Error()))
	}
	return core.Close()
}

func GetIPLimitBuilder(appCore *core.Core) func(operation string) gin.HandlerFunc {
	return func(operation string) gin.HandlerFunc {
		return middleware.UseLimit(appCore, operation, middleware.ClientIPKey, appCore.Cfg().Limiter.PerMinute)
	}
}

func setupHttpRouter(s *handler.HttpSrv) {
	ipLimit := GetIPLimitBuilder(s.Core)

	// logic receives the gin context, let it carry request cancellation to the store
	s.Engine.ContextWithFallback = true
	s.Engine.Use(gin.Recovery())
	s.Engine.Use(middleware.I18n(), middleware.AcceptLanguage(), response.NewResponse(), middleware.RequestID())
	s.Engine.Use(middleware.Cors)
	s.Engine.Use(middleware.Metrics(s.Core))

	s.Engine.GET("/healthz", s.Healthz)
	if cfg := s.Core.Cfg().Metrics; cfg.Enable {
		s.Engine.GET(cfg.Path, s.Core.Metrics().ExportHandler())
	}

	entries := s.Engine.Group("/manager/entries")
	entries.Use(ipLimit("entries"))
	{
		// both with and without the trailing slash, no redirect for non GET clients
		entries.POST("", s.CreateEntry)
		entries.POST("/", s.CreateEntry)
		entries.PUT("/content/", s.UpdateEntryContent)
		entries.PUT("/location/", s.UpdateEntryLocation)
		entries.PUT("/completed/", s.UpdateEntryCompleted)
		entries.PUT("/tags/", s.UpdateEntryTags)
		entries.GET("", s.ListEntries)
		entries.GET("/", s.ListEntries)
		entries.GET("/id/:id", s.GetEntry)
		entries.GET("/location/:location", s.ListEntriesByLocation)
		entries.DELETE("/id/:id", s.DeleteEntry)
	}

	users := s.Engine.Group("/users")
	{
		users.GET("", s.UserPlaceholder)
		users.GET("/", s.UserPlaceholder)
		users.GET("/all", s.ListUsers)
	}
}
