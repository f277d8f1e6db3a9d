package interfaces

import "stock-tracker/src/models"

// -----------------------------------------------------------------------------
// IMarketData is the contract of the upstream market-data provider.
// All methods are pure reads; they never touch the database.
// -----------------------------------------------------------------------------

type IMarketData interface {

	// FetchMarketSnapshot returns a mapping from ticker to its bulk
	// snapshot record. Records missing a required field are excluded.
	// On upstream failure the map is empty and the error describes why;
	// the caller logs and proceeds with zero master rows.
	FetchMarketSnapshot() (map[string]models.MTickerSnapshot, error)

	// -----------------------------------------------------------------------------

	// FetchStockDetail merges the independently-fallible sub-fetches
	// for one ticker. Returns nil when no ticker symbol was resolved.
	FetchStockDetail(ticker string) (*models.MStockDetail, error)

	// -----------------------------------------------------------------------------

	// FetchMarketStatus reads the provider's current market status.
	FetchMarketStatus() (*models.MMarketStatus, error)
}

// -----------------------------------------------------------------------------
// IConstituentScraper parses index holdings pages.
// -----------------------------------------------------------------------------

type IConstituentScraper interface {

	// FetchHoldings returns the ordered constituent rows of one index
	// page. Network and parse failures both degrade to an empty slice.
	FetchHoldings(index models.MIndexSpec) ([]models.MScrapedHolding, error)
}
