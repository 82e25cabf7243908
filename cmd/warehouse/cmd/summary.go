package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/finmart/warehouse/internal/infra/database/postgres"
	pgsummary "github.com/finmart/warehouse/internal/infra/database/postgres/summary"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print warehouse row counts, market breadth and average sentiment",
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		return err
	}
	defer pool.Close()

	reader := pgsummary.NewRepository(pool.Pool)

	counts, err := reader.TableCounts(ctx)
	if err != nil {
		return err
	}
	breadth, err := reader.MarketBreadth(ctx)
	if err != nil {
		return err
	}
	sentiment, err := reader.AverageSentiment(ctx)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(map[string]any{
		"table_counts":      counts,
		"market_breadth":    breadth,
		"average_sentiment": sentiment,
	}, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
