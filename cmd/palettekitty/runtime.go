// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/thatcatcamp/palettekitty/internal/catalog"
	"github.com/thatcatcamp/palettekitty/internal/config"
	"github.com/thatcatcamp/palettekitty/internal/kv"
	"github.com/thatcatcamp/palettekitty/internal/logging"
	"github.com/thatcatcamp/palettekitty/internal/viewmodel"
)

// app bundles everything a command needs to work on the catalog
type app struct {
	logger *slog.Logger
	store  *kv.Opened
	repo   *catalog.Repository
	vm     *viewmodel.Model
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close storage", "error", err)
	}
}

// storageOptions reads the substrate selection from config
func storageOptions() kv.Options {
	opts := kv.Options{
		Driver:        config.GetString("storage.driver"),
		Path:          config.GetString("storage.path"),
		CapacityBytes: config.GetInt64("storage.capacity_bytes"),
	}

	switch opts.Driver {
	case "database":
		opts.Driver = config.GetString("database.type")
		opts.Path = config.GetString("database.path")
	case "sqlite", "mysql", "mariadb":
		opts.Path = config.GetString("database.path")
	case "s3":
		opts.S3 = kv.S3Config{
			Bucket:          config.GetString("s3.bucket"),
			Prefix:          config.GetString("s3.prefix"),
			Region:          config.GetString("s3.region"),
			Endpoint:        config.GetString("s3.endpoint"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		}
	}
	return opts
}

func newLogger() *slog.Logger {
	return logging.New(logging.Config{
		Service: "palettekitty",
		Version: version,
		Level:   config.GetString("log.level"),
		Format:  config.GetString("log.format"),
	})
}

// openApp loads config, opens the configured storage and loads the catalog
func openApp() (*app, error) {
	if err := initConfig(); err != nil {
		return nil, err
	}

	logger := newLogger()

	store, err := kv.Open(storageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	repo := catalog.New(store.Substrate,
		catalog.WithKey(config.GetString("storage.key")),
		catalog.WithLogger(logger),
	)
	vm := viewmodel.New(repo, viewmodel.WithLogger(logger))
	vm.Load()

	return &app{logger: logger, store: store, repo: repo, vm: vm}, nil
}

// mustOpenApp is openApp for command bodies
func mustOpenApp() *app {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return a
}

// reportError prints the view model's error slot, if any, and returns
// whether there was one
func reportError(vm *viewmodel.Model) bool {
	if msg := vm.Err(); msg != "" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		return true
	}
	return false
}
