package interfaces

import "stock-tracker/src/models"

// -----------------------------------------------------------------------------
// IDatabase defines the contract for storage operations. The refresh
// pipeline is the only writer; the web layer only reads.
// -----------------------------------------------------------------------------

type IDatabase interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// ReplaceAll deletes every row of the holdings, index, bar, stock
	// and stock-master tables and bulk-inserts the staged records, all
	// inside a single transaction. Any failure rolls back completely.
	ReplaceAll(staging *models.MStaging) error

	// -----------------------------------------------------------------------------

	// InsertStocks appends stocks and their chart bars in a follow-up
	// commit (top-movers second pass).
	InsertStocks(stocks []models.MStock, minute, hour, day []models.MChartBar) error

	// -----------------------------------------------------------------------------

	// ReplaceTopMovers replaces the persisted ranked movers lists.
	ReplaceTopMovers(movers []models.MTopMover) error

	// -----------------------------------------------------------------------------
	// Read surface consumed by the web layer.

	GetAllIndices() ([]models.MIndex, error)
	GetIndex(slug string) (*models.MIndex, error)
	GetIndexHoldings(slug, sortBy, order string, filters []string) ([]models.MIndexHoldingRow, error)
	GetStockMaster(ticker string) (*models.MStockMaster, error)
	GetStock(ticker string) (*models.MStock, error)
	GetChartBars(ticker, timespan string, fromTs int64) ([]models.MChartBar, error)
	SearchStocks(query string, limit int) ([]models.MSearchResult, error)
	GetTopMovers(category string) ([]models.MTopMover, error)
	GetTickerTape(limit int) ([]models.MStockMaster, error)

	// -----------------------------------------------------------------------------
	// Aggregation surface consumed by the top-movers pass.

	TopMoversOverall(limit int) (gainers, losers, topTraded []models.MTopMover, err error)
	TopMoversForIndex(slug string, limit int) (gainers, losers, topTraded []models.MTopMover, err error)
	MissingStockTickers(tickers []string) ([]string, error)

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
