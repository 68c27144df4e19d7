// Command careerloft is the operations CLI: serve, migrations, seeding,
// route listing and queue workers.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/careerloft/careerloft/app/jobs"
	"github.com/careerloft/careerloft/config"
	"github.com/careerloft/careerloft/database/migrations"
	"github.com/careerloft/careerloft/database/seeders"
	"github.com/careerloft/careerloft/internal/kernel"
	"github.com/careerloft/careerloft/internal/server"
	"github.com/careerloft/careerloft/pkg/cache"
	"github.com/careerloft/careerloft/pkg/database"
	"github.com/careerloft/careerloft/pkg/queue"
	"github.com/careerloft/careerloft/pkg/schedule"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "careerloft",
		Short: "CareerLoft resume marketplace",
	}

	root.AddCommand(
		serveCmd(),
		migrateCmd(),
		rollbackCmd(),
		migrateStatusCmd(),
		seedCmd(),
		routeListCmd(),
		queueWorkCmd(),
		scheduleRunCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// withDB loads config and opens the database before fn runs.
func withDB(fn func() error) error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		return err
	}
	return fn()
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Run()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func() error { return migrations.Migrate(database.DB) })
		},
	}
}

func rollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:rollback",
		Short: "Roll back the last migration batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func() error { return migrations.Rollback(database.DB) })
		},
	}
}

func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:status",
		Short: "Show ran and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func() error { return migrations.Status(database.DB) })
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the admin account and default catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func() error {
				if err := migrations.Migrate(database.DB); err != nil {
					return err
				}
				return seeders.RunAll(database.DB)
			})
		},
	}
}

func routeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "Print every registered route",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			for _, info := range kernel.NewRouter().Routes() {
				fmt.Printf("%-7s %-45s %s\n", info.Method, info.Path, info.Name)
			}
			return nil
		},
	}
}

func queueWorkCmd() *cobra.Command {
	var workers int
	cmd := &cobra.Command{
		Use:   "queue:work",
		Short: "Run queue workers until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func() error {
				queue.UseDB(database.DB)
				if err := cache.Connect(); err == nil &&
					config.Get("QUEUE_DRIVER", "memory") == "redis" {
					queue.SetDriver(queue.NewRedisDriver(cache.RDB))
				}

				jobs.RegisterAll()

				ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				queue.StartWorkers(ctx, workers)
				<-ctx.Done()
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "number of concurrent workers")
	return cmd
}

func scheduleRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule:run",
		Short: "Run the task scheduler until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func() error {
				queue.UseDB(database.DB)
				jobs.RegisterAll()
				kernel.RegisterSchedules()

				ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				schedule.Start(ctx)
				<-ctx.Done()
				return nil
			})
		},
	}
}
