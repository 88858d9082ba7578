package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/anandicecream/storefront/app/jobs"
	"github.com/anandicecream/storefront/config"
	"github.com/anandicecream/storefront/internal/notify"
	"github.com/anandicecream/storefront/pkg/cache"
	"github.com/anandicecream/storefront/pkg/database"
	"github.com/anandicecream/storefront/pkg/queue"
	"github.com/anandicecream/storefront/pkg/storage"
)

var queueWorkersFlag int

// storefront queue:work — a standalone worker process. It shares the
// Redis-backed queue with the API server, so customer status emails can
// be drained from a separate process.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if err := database.Connect(); err != nil {
			return err
		}
		if err := cache.Connect(); err != nil {
			return fmt.Errorf("queue:work needs redis: %w", err)
		}
		storage.Connect()

		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		if err := queue.UseDB(database.DB); err != nil {
			return err
		}
		jobs.Register()
		jobs.UseDispatcher(notify.New(config.AdminEmail(), storage.Default()))

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 5
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 5, "Number of concurrent workers")
}
