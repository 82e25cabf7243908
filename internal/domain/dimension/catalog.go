package dimension

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// Fallback attribute placeholders used when a natural key has no catalog entry.
const (
	UnknownSector    = "Unknown"
	UnknownIndustry  = "Unknown"
	DefaultUnits     = "Units"
	DefaultFrequency = "Monthly"
)

// SecurityProfile holds the descriptive attributes for a known ticker symbol.
type SecurityProfile struct {
	CompanyName string `yaml:"company_name"`
	Sector      string `yaml:"sector"`
	Industry    string `yaml:"industry"`
	MarketCap   int64  `yaml:"market_cap"`
}

// IndicatorProfile holds the descriptive attributes for a known series id.
type IndicatorProfile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Units       string `yaml:"units"`
	Frequency   string `yaml:"frequency"`
}

// Catalog is the static attribute lookup the resolver consults before falling
// back to derived attributes. It is plain data so deployments can override it
// with a YAML file instead of patching code.
type Catalog struct {
	Securities map[string]SecurityProfile `yaml:"securities"`
	Indicators map[string]IndicatorProfile `yaml:"indicators"`
}

// DefaultCatalog covers the default extraction universe.
func DefaultCatalog() Catalog {
	return Catalog{
		Securities: map[string]SecurityProfile{
			"AAPL":  {CompanyName: "Apple Inc.", Sector: "Technology", Industry: "Consumer Electronics", MarketCap: 3_400_000_000_000},
			"MSFT":  {CompanyName: "Microsoft Corporation", Sector: "Technology", Industry: "Software - Infrastructure", MarketCap: 3_100_000_000_000},
			"GOOGL": {CompanyName: "Alphabet Inc.", Sector: "Communication Services", Industry: "Internet Content & Information", MarketCap: 2_100_000_000_000},
			"TSLA":  {CompanyName: "Tesla, Inc.", Sector: "Consumer Cyclical", Industry: "Auto Manufacturers", MarketCap: 800_000_000_000},
		},
		Indicators: map[string]IndicatorProfile{
			"GDP":      {Name: "Gross Domestic Product", Description: "Quarterly U.S. gross domestic product", Units: "Billions of Dollars", Frequency: "Quarterly"},
			"UNRATE":   {Name: "Unemployment Rate", Description: "Civilian unemployment rate", Units: "Percent", Frequency: "Monthly"},
			"CPIAUCSL": {Name: "Consumer Price Index", Description: "CPI for all urban consumers, all items", Units: "Index 1982-1984=100", Frequency: "Monthly"},
			"FEDFUNDS": {Name: "Federal Funds Rate", Description: "Effective federal funds rate", Units: "Percent", Frequency: "Monthly"},
		},
	}
}

// LoadCatalog reads a YAML catalog file and merges it over the defaults.
// Entries in the file win; unknown keys simply extend the catalog.
func LoadCatalog(path string) (Catalog, error) {
	catalog := DefaultCatalog()
	if path == "" {
		return catalog, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Catalog{}, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}

	var overlay Catalog
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog file: %w", err)
	}

	for symbol, profile := range overlay.Securities {
		catalog.Securities[symbol] = profile
	}
	for series, profile := range overlay.Indicators {
		catalog.Indicators[series] = profile
	}
	return catalog, nil
}

// ResolveSecurity returns the dimension attributes for a symbol: an exact
// catalog hit, otherwise the documented fallback — display name is the symbol
// segment before the first '.', sector/industry are generic placeholders and
// market cap is zero.
func (c Catalog) ResolveSecurity(symbol string) Security {
	if profile, ok := c.Securities[symbol]; ok {
		return Security{
			Symbol:      symbol,
			CompanyName: profile.CompanyName,
			Sector:      profile.Sector,
			Industry:    profile.Industry,
			MarketCap:   profile.MarketCap,
		}
	}

	name, _, _ := strings.Cut(symbol, ".")
	return Security{
		Symbol:      symbol,
		CompanyName: name,
		Sector:      UnknownSector,
		Industry:    UnknownIndustry,
		MarketCap:   0,
	}
}

// ResolveIndicator returns the dimension attributes for a series id. The
// staged series name, when present, beats the generic fallback but not the
// catalog.
func (c Catalog) ResolveIndicator(seriesID, stagedName string) Indicator {
	if profile, ok := c.Indicators[seriesID]; ok {
		return Indicator{
			SeriesID:    seriesID,
			Name:        profile.Name,
			Description: profile.Description,
			Units:       profile.Units,
			Frequency:   profile.Frequency,
		}
	}

	name := stagedName
	if name == "" {
		name = seriesID
	}
	return Indicator{
		SeriesID:    seriesID,
		Name:        name,
		Description: name,
		Units:       DefaultUnits,
		Frequency:   DefaultFrequency,
	}
}
