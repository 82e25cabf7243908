package dimension

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSecurity_CatalogHit(t *testing.T) {
	catalog := DefaultCatalog()

	sec := catalog.ResolveSecurity("AAPL")
	assert.Equal(t, "AAPL", sec.Symbol)
	assert.Equal(t, "Apple Inc.", sec.CompanyName)
	assert.Equal(t, "Technology", sec.Sector)
	assert.NotZero(t, sec.MarketCap)
}

func TestResolveSecurity_Fallback(t *testing.T) {
	catalog := DefaultCatalog()

	sec := catalog.ResolveSecurity("BRK.B")
	assert.Equal(t, "BRK.B", sec.Symbol)
	assert.Equal(t, "BRK", sec.CompanyName)
	assert.Equal(t, UnknownSector, sec.Sector)
	assert.Equal(t, UnknownIndustry, sec.Industry)
	assert.Zero(t, sec.MarketCap)
}

func TestResolveIndicator_CatalogHit(t *testing.T) {
	catalog := DefaultCatalog()

	ind := catalog.ResolveIndicator("UNRATE", "ignored")
	assert.Equal(t, "Unemployment Rate", ind.Name)
	assert.Equal(t, "Percent", ind.Units)
	assert.Equal(t, "Monthly", ind.Frequency)
}

func TestResolveIndicator_StagedNameFallback(t *testing.T) {
	catalog := DefaultCatalog()

	ind := catalog.ResolveIndicator("DGS10", "10-Year Treasury Rate")
	assert.Equal(t, "10-Year Treasury Rate", ind.Name)
	assert.Equal(t, DefaultUnits, ind.Units)
	assert.Equal(t, DefaultFrequency, ind.Frequency)
}

func TestResolveIndicator_BareFallback(t *testing.T) {
	catalog := DefaultCatalog()

	ind := catalog.ResolveIndicator("DGS10", "")
	assert.Equal(t, "DGS10", ind.Name)
	assert.Equal(t, "DGS10", ind.Description)
}

func TestLoadCatalog_EmptyPath(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Contains(t, catalog.Securities, "MSFT")
	assert.Contains(t, catalog.Indicators, "GDP")
}

func TestLoadCatalog_Missing(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrCatalogNotFound)
}

func TestLoadCatalog_Overlay(t *testing.T) {
	overlay := `
securities:
  AAPL:
    company_name: Apple Computer
    sector: Tech
    industry: Hardware
    market_cap: 1
  NVDA:
    company_name: NVIDIA Corporation
    sector: Technology
    industry: Semiconductors
    market_cap: 3000000000000
indicators:
  DGS10:
    name: 10-Year Treasury Rate
    description: Market yield on 10-year treasuries
    units: Percent
    frequency: Daily
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0o644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)

	// Overlay entries win over defaults.
	assert.Equal(t, "Apple Computer", catalog.Securities["AAPL"].CompanyName)
	// New entries extend the catalog.
	assert.Equal(t, "NVIDIA Corporation", catalog.Securities["NVDA"].CompanyName)
	assert.Equal(t, "Daily", catalog.Indicators["DGS10"].Frequency)
	// Untouched defaults survive.
	assert.Equal(t, "Microsoft Corporation", catalog.Securities["MSFT"].CompanyName)
}
