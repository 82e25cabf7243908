package transform

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/finmart/warehouse/internal/domain/dimension"
	"github.com/finmart/warehouse/internal/pkg/config"
)

// Horizon is the inclusive calendar range dim_date must cover.
type Horizon struct {
	Start time.Time
	End   time.Time
}

// Service is the staging-to-star-schema transform engine. Each component runs
// in its own transaction: a failed component rolls back alone and the rest of
// the run keeps going, except where a dependency makes that pointless.
type Service struct {
	uow      UnitOfWork
	catalog  dimension.Catalog
	validate *validator.Validate

	horizon Horizon
	symbols []string
	series  []string
}

// New builds a transform service from pipeline configuration.
func New(uow UnitOfWork, cfg config.PipelineConfig) (*Service, error) {
	catalog, err := dimension.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load attribute catalog: %w", err)
	}

	return &Service{
		uow:      uow,
		catalog:  catalog,
		validate: validator.New(),
		horizon:  Horizon{Start: cfg.CalendarStart, End: cfg.CalendarEnd},
		symbols:  cfg.Symbols,
		series:   cfg.Series,
	}, nil
}

// Run executes one full transform pass: calendar, dimension resolvers, the
// three fact mergers, the change-percent pass, then the summary report.
//
// Ordering rules: the calendar failing aborts the run (every fact references
// dim_date); a resolver failing skips only the mergers that need its keys;
// the delta pass works from stored facts and runs regardless.
func (s *Service) Run(ctx context.Context) (*RunReport, error) {
	report := &RunReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	log.Info().
		Str("run_id", report.RunID).
		Str("calendar_start", s.horizon.Start.Format(time.DateOnly)).
		Str("calendar_end", s.horizon.End.Format(time.DateOnly)).
		Msg("Transform run starting")

	ok := s.runComponent(ctx, report, "calendar", func(ctx context.Context, st Stores) error {
		result, err := s.buildCalendar(ctx, st)
		report.Calendar = result
		return err
	})
	if !ok {
		report.Duration = time.Since(report.StartedAt)
		return report, fmt.Errorf("calendar build failed, aborting run %s", report.RunID)
	}

	securitiesOK := s.runComponent(ctx, report, "securities", func(ctx context.Context, st Stores) error {
		result, err := s.resolveSecurities(ctx, st)
		report.Securities = result
		return err
	})

	indicatorsOK := s.runComponent(ctx, report, "indicators", func(ctx context.Context, st Stores) error {
		result, err := s.resolveIndicators(ctx, st)
		report.Indicators = result
		return err
	})

	if securitiesOK {
		s.runComponent(ctx, report, "prices", func(ctx context.Context, st Stores) error {
			result, err := s.mergePrices(ctx, st)
			report.Prices = result
			return err
		})
		s.runComponent(ctx, report, "news", func(ctx context.Context, st Stores) error {
			result, err := s.mergeNews(ctx, st)
			report.News = result
			return err
		})
	} else {
		log.Warn().Msg("⚠️  Security resolver failed, skipping price and news mergers")
	}

	if indicatorsOK {
		s.runComponent(ctx, report, "economics", func(ctx context.Context, st Stores) error {
			result, err := s.mergeEconomics(ctx, st)
			report.Economics = result
			return err
		})
	} else {
		log.Warn().Msg("⚠️  Indicator resolver failed, skipping economics merger")
	}

	s.runComponent(ctx, report, "delta", func(ctx context.Context, st Stores) error {
		result, err := s.computeDeltas(ctx, st)
		report.Delta = result
		return err
	})

	s.runComponent(ctx, report, "summary", func(ctx context.Context, st Stores) error {
		summary, err := s.readSummary(ctx, st)
		report.Summary = summary
		return err
	})

	report.Duration = time.Since(report.StartedAt)

	if report.Failed() {
		log.Error().
			Str("run_id", report.RunID).
			Strs("failures", report.Failures).
			Dur("duration", report.Duration).
			Msg("Transform run finished with failures")
		return report, fmt.Errorf("transform run %s: %d component(s) failed", report.RunID, len(report.Failures))
	}

	log.Info().
		Str("run_id", report.RunID).
		Dur("duration", report.Duration).
		Msg("✅ Transform run complete")

	return report, nil
}

// runComponent wraps one component in a unit of work, records its timing and
// converts an error into a report failure.
func (s *Service) runComponent(ctx context.Context, report *RunReport, name string, fn func(ctx context.Context, st Stores) error) bool {
	started := time.Now()
	err := s.uow.WithinTx(ctx, fn)
	report.Timings = append(report.Timings, ComponentTiming{
		Component: name,
		Duration:  time.Since(started),
	})

	if err != nil {
		log.Error().Err(err).Str("component", name).Msg("Component failed, rolled back")
		report.Failures = append(report.Failures, fmt.Sprintf("%s: %v", name, err))
		return false
	}
	return true
}
