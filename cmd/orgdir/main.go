// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/orgdir"
	"github.com/poiesic/orgdir/dataset"
	"github.com/poiesic/orgdir/httpapi"
	"github.com/poiesic/orgdir/seed"
	"github.com/poiesic/orgdir/storage/redis"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "orgdir",
		Usage: "Company directory lookup",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"ORGDIR_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "backend",
				Usage:   "Company store backend (badger, redis)",
				Value:   "badger",
				EnvVars: []string{"ORGDIR_BACKEND"},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./orgdir_db",
				EnvVars: []string{"ORGDIR_DB"},
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "Redis server address",
				Value:   "localhost:6379",
				EnvVars: []string{"ORGDIR_REDIS_ADDR"},
			},
			&cli.StringFlag{
				Name:    "redis-namespace",
				Usage:   "Key prefix for company data in Redis",
				Value:   "orgdir:companies",
				EnvVars: []string{"ORGDIR_REDIS_NAMESPACE"},
			},
			&cli.StringFlag{
				Name:    "dataset",
				Usage:   "YAML file of seed companies (default: built-in dataset)",
				EnvVars: []string{"ORGDIR_DATASET"},
			},
			&cli.StringFlag{
				Name:    "lock-dir",
				Usage:   "Directory for the cross-process seed lock (empty disables it)",
				EnvVars: []string{"ORGDIR_LOCK_DIR"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Load the seed dataset into an empty store",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent writes (0 uses half the CPUs)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N companies (0 disables progress)",
						Value: 10,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Look up companies by partial name",
				ArgsUsage: "<text>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON",
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8080",
						EnvVars: []string{"ORGDIR_ADDR"},
					},
					&cli.IntFlag{
						Name:  "rate-limit",
						Usage: "Search requests per minute per client IP (0 disables the limit)",
						Value: 60,
					},
					&cli.BoolFlag{
						Name:  "seed",
						Usage: "Seed the store before serving",
					},
				},
			},
		},
	}
}

// openDirectory builds the directory selected by the global flags.
func openDirectory(c *cli.Context) (*orgdir.Directory, error) {
	var opts []orgdir.DirectoryOption
	if path := c.String("dataset"); path != "" {
		ds, err := dataset.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load dataset: %w", err)
		}
		opts = append(opts, orgdir.WithDataset(ds))
	}

	switch backend := strings.ToLower(c.String("backend")); backend {
	case "badger":
		dir, err := orgdir.NewDirectory(c.String("db"), opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return dir, nil
	case "redis":
		store, err := redis.Open(c.String("redis-addr"), redis.WithNamespace(c.String("redis-namespace")))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return orgdir.NewDirectoryWithStore(store, opts...)
	default:
		return nil, fmt.Errorf("invalid backend %q: must be one of badger, redis", backend)
	}
}

func seedCommand(c *cli.Context) error {
	dir, err := openDirectory(c)
	if err != nil {
		return err
	}
	defer dir.Close()

	opts := []seed.Option{}
	if n := c.Int("pool-size"); n > 0 {
		opts = append(opts, seed.WithPoolSize(n))
	}
	if n := c.Int("report-interval"); n > 0 {
		opts = append(opts, seed.WithProgress(c.App.ErrWriter, n))
	}

	seeder, err := dir.NewSeeder(opts...)
	if err != nil {
		return fmt.Errorf("failed to create seeder: %w", err)
	}
	defer seeder.Release()

	guard, err := seed.NewGuard(seeder, c.String("lock-dir"))
	if err != nil {
		return err
	}

	result := guard.Seed(c.Context)
	fmt.Fprintln(c.App.Writer, result.Message)
	for _, name := range result.Failed {
		fmt.Fprintf(c.App.Writer, "failed: %s\n", name)
	}
	if !result.Success {
		return fmt.Errorf("seeding failed: %s", result.Message)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("search text is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	dir, err := openDirectory(c)
	if err != nil {
		return err
	}
	defer dir.Close()

	gateway, err := dir.NewGateway()
	if err != nil {
		return fmt.Errorf("failed to create gateway: %w", err)
	}

	lookup := gateway.Lookup(c.Context, query)
	if c.Bool("json") {
		return printJSON(c.App.Writer, lookup.Results)
	}

	fmt.Fprintf(c.App.Writer, "Found %d companies (%s)\n", len(lookup.Results), lookup.Source)
	for i, r := range lookup.Results {
		fmt.Fprintf(c.App.Writer, "%d: %s [%s] %s\n", i+1, r.Name, r.Industry, r.EmployeeSize)
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	dir, err := openDirectory(c)
	if err != nil {
		return err
	}
	defer dir.Close()

	gateway, err := dir.NewGateway()
	if err != nil {
		return fmt.Errorf("failed to create gateway: %w", err)
	}

	seeder, err := dir.NewSeeder()
	if err != nil {
		return fmt.Errorf("failed to create seeder: %w", err)
	}
	defer seeder.Release()

	guard, err := seed.NewGuard(seeder, c.String("lock-dir"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.Bool("seed") {
		result := guard.Seed(ctx)
		slog.Info("seed finished", "success", result.Success, "count", result.Count, "message", result.Message)
	}

	handler, err := httpapi.NewHandler(gateway,
		httpapi.WithSeeder(guard),
		httpapi.WithRateLimit(c.Int("rate-limit"), time.Minute),
	)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              c.String("addr"),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
