package transform

import (
	"context"

	"github.com/finmart/warehouse/internal/domain/dimension"
	"github.com/finmart/warehouse/internal/domain/fact"
	"github.com/finmart/warehouse/internal/domain/staging"
	"github.com/finmart/warehouse/internal/domain/summary"
)

// Stores bundles every repository a transform component can touch. Inside a
// unit of work all stores share one transaction, so a component either lands
// completely or not at all.
type Stores struct {
	StagedPrices staging.PriceReader
	StagedNews   staging.NewsReader
	StagedEcon   staging.EconReader

	Dates      dimension.DateRepository
	Securities dimension.SecurityRepository
	Indicators dimension.IndicatorRepository

	Prices    fact.PriceRepository
	News      fact.NewsRepository
	Economics fact.EconomicsRepository

	Summary summary.Reader
}

// UnitOfWork runs a function against transactional stores. An error from the
// function rolls the whole component back.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}
