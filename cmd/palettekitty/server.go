// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/thatcatcamp/palettekitty/internal/backup"
	"github.com/thatcatcamp/palettekitty/internal/config"
	"github.com/thatcatcamp/palettekitty/internal/handlers"
	"github.com/thatcatcamp/palettekitty/internal/middleware"
	"github.com/thatcatcamp/palettekitty/internal/themes"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server operations",
	Long:  "Start and manage the PaletteKitty HTTP API",
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		a := mustOpenApp()
		defer a.Close()
		logger := a.logger

		if config.GetString("log.level") != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Backup scheduler
		var schedulerDone chan bool
		var scheduler *backup.Scheduler
		if config.GetBool("backups.enable_auto_backup") {
			scheduler = backup.NewScheduler(newBackupManager(), func() (string, error) {
				if _, err := a.repo.Snapshot(); err != nil {
					return "", err
				}
				return a.repo.ExportAll(), nil
			})
			scheduler.Retention = config.GetInt("backups.retention")
			scheduler.Logger = logger.With("component", "backup")
			if interval := config.GetDuration("backups.interval"); interval > 0 {
				scheduler.SetInterval(interval)
			}
			schedulerDone = scheduler.Start()
			logger.Info("backup scheduler started", "interval", scheduler.BackupInterval)
		}

		var limiter *middleware.RateLimiter
		if perMinute := config.GetInt("server.rate_limit"); perMinute > 0 {
			limiter = middleware.NewRateLimiter(perMinute, time.Minute)
			go limiter.RunSweeper(ctx, 5*time.Minute)
		}

		r := handlers.NewRouter(handlers.RouterConfig{
			Repo:      a.repo,
			Generator: themes.Harmony{},
			Logger:    logger,
			Limiter:   limiter,
			HSTS:      config.GetBool("server.hsts"),
		})

		port, _ := cmd.Flags().GetString("port")
		if port == "" {
			port = config.GetString("server.http_port")
		}
		addr := fmt.Sprintf(":%s", port)

		listener, err := net.Listen("tcp", addr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to bind HTTP server to %s: %v\n", addr, err)
			os.Exit(1)
		}

		srv := &http.Server{
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		serveErr := make(chan error, 1)
		go func() {
			serveErr <- srv.Serve(listener)
		}()
		logger.Info("HTTP server listening", "addr", addr)
		fmt.Printf("PaletteKitty listening on %s\n", addr)

		select {
		case <-ctx.Done():
		case err := <-serveErr:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("HTTP server failed", "error", err)
			}
		}

		logger.Info("shutting down")
		timeout := config.GetDuration("server.shutdown_timeout")
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}

		if scheduler != nil {
			scheduler.Stop()
			<-schedulerDone
		}
	},
}

func init() {
	serverStartCmd.Flags().String("port", "", "port to listen on (defaults to server.http_port)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)
}
