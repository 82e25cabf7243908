package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/finmart/warehouse/internal/infra/database/postgres"
	"github.com/finmart/warehouse/internal/infra/database/postgres/store"
	"github.com/finmart/warehouse/internal/service/transform"
)

var scheduleFlag string

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Run the staging-to-star-schema transform",
	Long: `Run the staging-to-star-schema transform.

Runs once and exits by default. With --schedule (or TRANSFORM_SCHEDULE) the
engine stays up and runs on the given cron expression until interrupted.`,
	RunE: runTransform,
}

func init() {
	transformCmd.Flags().StringVar(&scheduleFlag, "schedule", "", `cron expression, e.g. "0 6 * * *" (overrides TRANSFORM_SCHEDULE)`)
}

func runTransform(cmd *cobra.Command, args []string) error {
	log.Info().
		Str("version", serviceVersion).
		Msg("🚀 Starting warehouse transform...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		return err
	}
	defer pool.Close()

	svc, err := transform.New(store.New(pool), cfg.Pipeline)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build transform service")
		return err
	}

	schedule := scheduleFlag
	if schedule == "" {
		schedule = cfg.Pipeline.Schedule
	}
	if schedule == "" {
		_, err := svc.Run(ctx)
		return err
	}

	return runScheduled(ctx, cancel, svc, schedule)
}

// runScheduled keeps the engine up and fires a run on each cron tick. A run
// still in flight when the next tick arrives is not overlapped; the scheduler
// skips the tick and logs it.
func runScheduled(ctx context.Context, cancel context.CancelFunc, svc *transform.Service, schedule string) error {
	scheduler := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	_, err := scheduler.AddFunc(schedule, func() {
		if _, err := svc.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Scheduled transform run failed")
		}
	})
	if err != nil {
		log.Error().Err(err).Str("schedule", schedule).Msg("Invalid cron expression")
		return err
	}

	scheduler.Start()
	log.Info().Str("schedule", schedule).Msg("✅ Transform scheduler started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("🛑 Shutdown signal received, stopping scheduler...")
	cancel()
	<-scheduler.Stop().Done()

	log.Info().Msg("👋 Warehouse transform stopped")
	return nil
}
