package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homeroom/internal/config"
	"homeroom/internal/db"
	"homeroom/internal/logx"
	"homeroom/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal(err, "configuration load failed")
	}
	logx.Init(cfg.Environment == "development")

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logx.Fatal(err, "datastore open failed", "db_path", cfg.DBPath)
	}
	defer database.Close()

	srv, err := server.New(database, cfg.TemplateDir)
	if err != nil {
		logx.Fatal(err, "server setup failed")
	}
	srv.SessionTTL = cfg.SessionTTL

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logx.Info("listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal(err, "server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logx.Error(err, "shutdown failed")
	}
	logx.Info("server stopped")
}
