package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/finmart/warehouse/internal/infra/database/postgres"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check database connectivity and pool health",
	RunE:  runHealth,
}

func runHealth(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		return err
	}
	defer pool.Close()

	status := pool.Health(ctx)

	out, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	if status.Status == "unhealthy" {
		return fmt.Errorf("database unhealthy: %s", status.Error)
	}
	return nil
}
