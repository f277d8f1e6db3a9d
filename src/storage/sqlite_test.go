package storage

import (
	"path/filepath"
	"testing"

	"stock-tracker/src/logger"
	"stock-tracker/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()

	cfg := &models.MConfig{}
	cfg.Storage.DBType = "sqlite"
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "test.db")

	db, err := NewSQLiteDB(cfg, logger.NewLogger("test"))
	require.NoError(t, err)
	require.NoError(t, db.Initialize())
	t.Cleanup(func() { db.Close() })

	return db
}

// -----------------------------------------------------------------------------

func floatPtr(v float64) *float64 { return &v }

func master(ticker, name string, close, change, changePerc, volume float64) models.MStockMaster {
	return models.MStockMaster{
		Ticker:           ticker,
		Name:             name,
		Type:             "CS",
		Exchange:         "XNAS",
		Updated:          1718928000,
		DayOpen:          close - 1,
		DayHigh:          close + 1,
		DayLow:           close - 2,
		DayClose:         close,
		Volume:           volume,
		TodaysChange:     change,
		TodaysChangePerc: changePerc,
	}
}

// -----------------------------------------------------------------------------

func testStaging() *models.MStaging {
	staging := models.NewStaging()

	staging.Masters = []models.MStockMaster{
		master("AAPL", "Apple Inc.", 200, 5, 2.5, 50000000),
		master("MSFT", "Microsoft Corp", 400, -4, -1.0, 20000000),
		master("FLAT", "Flat Corp", 10, 0, 0, 1000),
	}

	staging.Stocks = []models.MStock{
		{Ticker: "AAPL", Name: "Apple Inc.", DayClose: floatPtr(200), Volume: floatPtr(50000000),
			TodaysChange: floatPtr(5), TodaysChangePerc: floatPtr(2.5),
			DMA200PercDiff: floatPtr(15), LastUpdated: 1718928000},
		{Ticker: "MSFT", Name: "Microsoft Corp", DayClose: floatPtr(400), Volume: floatPtr(20000000),
			TodaysChange: floatPtr(-4), TodaysChangePerc: floatPtr(-1.0),
			LastUpdated: 1718928000},
	}

	staging.Indices = []models.MIndex{
		{Slug: "sp500", Name: "S&P 500 Index", URL: "https://example.com/sp500", LastUpdated: 1718928000},
	}

	staging.Holdings = []models.MIndexHolding{
		{IndexSlug: "sp500", Ticker: "AAPL", Rank: 1, Weight: floatPtr(7.25)},
		{IndexSlug: "sp500", Ticker: "MSFT", Rank: 2, Weight: floatPtr(6.8)},
	}

	staging.DayBars = []models.MChartBar{
		{Ticker: "AAPL", Timestamp: 1718841600, Close: 199, EMA30: 198, EMA50: 197, EMA200: 190, Volume: 40000000},
		{Ticker: "AAPL", Timestamp: 1718928000, Close: 200, EMA30: 198.5, EMA50: 197.2, EMA200: 190.4, Volume: 50000000},
	}

	return staging
}

// -----------------------------------------------------------------------------

func TestReplaceAllRoundTrip(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.ReplaceAll(testStaging()))

	m, err := db.GetStockMaster("AAPL")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Apple Inc.", m.Name)
	assert.Equal(t, 200.0, m.DayClose)

	s, err := db.GetStock("AAPL")
	require.NoError(t, err)
	require.NotNil(t, s)
	require.NotNil(t, s.DMA200PercDiff)
	assert.Equal(t, 15.0, *s.DMA200PercDiff)

	indices, err := db.GetAllIndices()
	require.NoError(t, err)
	require.Len(t, indices, 1)
	assert.Equal(t, "sp500", indices[0].Slug)

	bars, err := db.GetChartBars("AAPL", models.TimespanDay, 0)
	require.NoError(t, err)
	assert.Len(t, bars, 2)
}

// -----------------------------------------------------------------------------

func TestReplaceAllIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.ReplaceAll(testStaging()))
	require.NoError(t, db.ReplaceAll(testStaging()))

	var count int
	require.NoError(t, db.DB.QueryRow("SELECT COUNT(*) FROM stock_master").Scan(&count))
	assert.Equal(t, 3, count)

	require.NoError(t, db.DB.QueryRow("SELECT COUNT(*) FROM index_holdings").Scan(&count))
	assert.Equal(t, 2, count)
}

// -----------------------------------------------------------------------------

func TestReplaceAllRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.ReplaceAll(testStaging()))

	// A duplicate master primary key poisons the batch mid-way.
	bad := testStaging()
	bad.Masters = append(bad.Masters, master("AAPL", "Apple Again", 1, 1, 1, 1))
	bad.Masters[0].Name = "Should Never Persist"

	require.Error(t, db.ReplaceAll(bad))

	// The previous dataset is fully intact.
	m, err := db.GetStockMaster("AAPL")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "Apple Inc.", m.Name)

	var count int
	require.NoError(t, db.DB.QueryRow("SELECT COUNT(*) FROM stock_master").Scan(&count))
	assert.Equal(t, 3, count)
}

// -----------------------------------------------------------------------------

func TestGetStockMasterUnknown(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.ReplaceAll(testStaging()))

	m, err := db.GetStockMaster("NOPE")
	require.NoError(t, err)
	assert.Nil(t, m)
}

// -----------------------------------------------------------------------------

func TestTopMoversOverallExcludesZeroChange(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.ReplaceAll(testStaging()))

	gainers, losers, topTraded, err := db.TopMoversOverall(10)
	require.NoError(t, err)

	// FLAT has zero change: in neither gainers nor losers.
	require.Len(t, gainers, 1)
	assert.Equal(t, "AAPL", gainers[0].Ticker)
	assert.Equal(t, 1, gainers[0].Rank)
	assert.Equal(t, models.MoversGainers, gainers[0].List)
	assert.Equal(t, models.CategoryOverall, gainers[0].Category)

	require.Len(t, losers, 1)
	assert.Equal(t, "MSFT", losers[0].Ticker)

	// Top traded keeps every ticker, volume descending.
	require.Len(t, topTraded, 3)
	assert.Equal(t, "AAPL", topTraded[0].Ticker)
	assert.Equal(t, "FLAT", topTraded[2].Ticker)
}

// -----------------------------------------------------------------------------

func TestTopMoversOverallTieBreaksOnTicker(t *testing.T) {
	db := newTestDB(t)

	staging := models.NewStaging()
	staging.Masters = []models.MStockMaster{
		master("ZZZ", "Zeta", 10, 1, 3.0, 100),
		master("AAA", "Alpha", 10, 1, 3.0, 100),
	}
	require.NoError(t, db.ReplaceAll(staging))

	gainers, _, _, err := db.TopMoversOverall(10)
	require.NoError(t, err)
	require.Len(t, gainers, 2)
	assert.Equal(t, "AAA", gainers[0].Ticker)
	assert.Equal(t, "ZZZ", gainers[1].Ticker)
}

// -----------------------------------------------------------------------------

func TestTopMoversForIndex(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.ReplaceAll(testStaging()))

	gainers, losers, topTraded, err := db.TopMoversForIndex("sp500", 10)
	require.NoError(t, err)

	require.Len(t, gainers, 1)
	assert.Equal(t, "AAPL", gainers[0].Ticker)
	assert.Equal(t, "sp500", gainers[0].Category)

	require.Len(t, losers, 1)
	assert.Equal(t, "MSFT", losers[0].Ticker)

	assert.Len(t, topTraded, 2)
}

// -----------------------------------------------------------------------------

func TestReplaceTopMoversRoundTrip(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.ReplaceAll(testStaging()))

	movers := []models.MTopMover{
		{Category: "overall", List: models.MoversGainers, Rank: 1, Ticker: "AAPL", Name: "Apple Inc.",
			DayClose: 200, TodaysChange: 5, TodaysChangePerc: 2.5, Volume: 50000000},
		{Category: "overall", List: models.MoversLosers, Rank: 1, Ticker: "MSFT", Name: "Microsoft Corp",
			DayClose: 400, TodaysChange: -4, TodaysChangePerc: -1.0, Volume: 20000000},
	}
	require.NoError(t, db.ReplaceTopMovers(movers))

	got, err := db.GetTopMovers("overall")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// A second replace does not accumulate.
	require.NoError(t, db.ReplaceTopMovers(movers[:1]))
	got, err = db.GetTopMovers("overall")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

// -----------------------------------------------------------------------------

func TestGetIndexHoldingsFilters(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.ReplaceAll(testStaging()))

	// AAPL sits at +15% (dark_green); MSFT has no deviation figure.
	all, err := db.GetIndexHoldings("sp500", "weight", "desc", nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	darkGreen, err := db.GetIndexHoldings("sp500", "weight", "desc", []string{"dark_green"})
	require.NoError(t, err)
	require.Len(t, darkGreen, 1)
	assert.Equal(t, "AAPL", darkGreen[0].Ticker)

	red, err := db.GetIndexHoldings("sp500", "weight", "desc", []string{"red"})
	require.NoError(t, err)
	assert.Len(t, red, 0)
}

// -----------------------------------------------------------------------------

func TestGetIndexHoldingsSort(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.ReplaceAll(testStaging()))

	byName, err := db.GetIndexHoldings("sp500", "name", "asc", nil)
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, "AAPL", byName[0].Ticker)

	// Unknown sort fields fall back to weight descending.
	fallback, err := db.GetIndexHoldings("sp500", "nonsense", "drop table", nil)
	require.NoError(t, err)
	require.Len(t, fallback, 2)
	assert.Equal(t, "AAPL", fallback[0].Ticker)
}

// -----------------------------------------------------------------------------

func TestGetChartBarsFrom(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.ReplaceAll(testStaging()))

	bars, err := db.GetChartBars("AAPL", models.TimespanDay, 1718900000)
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, int64(1718928000), bars[0].Timestamp)

	_, err = db.GetChartBars("AAPL", "weekly", 0)
	assert.Error(t, err)
}

// -----------------------------------------------------------------------------

func TestInsertStocksAppends(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.ReplaceAll(testStaging()))

	stocks := []models.MStock{
		{Ticker: "FLAT", Name: "Flat Corp", LastUpdated: 1718928000},
	}
	day := []models.MChartBar{
		{Ticker: "FLAT", Timestamp: 1718928000, Close: 10, EMA30: 10, EMA50: 10, EMA200: 10, Volume: 1000},
	}
	require.NoError(t, db.InsertStocks(stocks, nil, nil, day))

	s, err := db.GetStock("FLAT")
	require.NoError(t, err)
	require.NotNil(t, s)

	bars, err := db.GetChartBars("FLAT", models.TimespanDay, 0)
	require.NoError(t, err)
	assert.Len(t, bars, 1)
}

// -----------------------------------------------------------------------------

func TestMissingStockTickers(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.ReplaceAll(testStaging()))

	missing, err := db.MissingStockTickers([]string{"AAPL", "FLAT", "MSFT", "FLAT", "NVDA"})
	require.NoError(t, err)
	assert.Equal(t, []string{"FLAT", "NVDA"}, missing)
}

// -----------------------------------------------------------------------------

func TestSearchStocksPrefix(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.ReplaceAll(testStaging()))

	results, err := db.SearchStocks("MS", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "MSFT", results[0].Ticker)

	results, err = db.SearchStocks("zzz", 10)
	require.NoError(t, err)
	assert.Len(t, results, 0)
}

// -----------------------------------------------------------------------------

func TestGetTickerTape(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.ReplaceAll(testStaging()))

	tape, err := db.GetTickerTape(2)
	require.NoError(t, err)
	require.Len(t, tape, 2)
	assert.Equal(t, "AAPL", tape[0].Ticker)
	assert.Equal(t, "MSFT", tape[1].Ticker)
}
