package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"stock-tracker/src/logger"
	"stock-tracker/src/models"
	"stock-tracker/src/storage"
	"stock-tracker/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func floatPtr(v float64) *float64 { return &v }

func newTestServer(t *testing.T) (*APIServer, *storage.SQLiteDB) {
	t.Helper()

	dataDir := t.TempDir()

	cfg := &models.MConfig{Name: "test", Host: "127.0.0.1", Port: 8080, DataDir: dataDir}
	cfg.Storage.DBType = "sqlite"
	cfg.Storage.DBPath = filepath.Join(dataDir, "test.db")

	log := logger.NewLogger("test")

	db, err := storage.NewSQLiteDB(cfg, log)
	require.NoError(t, err)
	require.NoError(t, db.Initialize())
	t.Cleanup(func() { db.Close() })

	seed(t, db)

	return NewAPIServer(cfg, db, log), db
}

// -----------------------------------------------------------------------------

func seed(t *testing.T, db *storage.SQLiteDB) {
	t.Helper()

	staging := models.NewStaging()
	staging.Masters = []models.MStockMaster{
		{Ticker: "AAPL", Name: "Apple Inc.", Type: "CS", Exchange: "XNAS", Updated: 1718928000,
			DayOpen: 199, DayHigh: 205, DayLow: 198, DayClose: 200, Volume: 50000000,
			TodaysChange: 5, TodaysChangePerc: 2.5},
		{Ticker: "MSFT", Name: "Microsoft Corp", Type: "CS", Exchange: "XNAS", Updated: 1718928000,
			DayOpen: 401, DayHigh: 402, DayLow: 395, DayClose: 400, Volume: 20000000,
			TodaysChange: -4, TodaysChangePerc: -1.0},
	}
	staging.Stocks = []models.MStock{
		{Ticker: "AAPL", Name: "Apple Inc.", DayClose: floatPtr(200), LastUpdated: 1718928000},
	}
	staging.Indices = []models.MIndex{
		{Slug: "sp500", Name: "S&P 500 Index", URL: "https://example.com/sp500", LastUpdated: 1718928000},
	}
	staging.Holdings = []models.MIndexHolding{
		{IndexSlug: "sp500", Ticker: "AAPL", Rank: 1, Weight: floatPtr(7.25)},
	}
	staging.DayBars = []models.MChartBar{
		{Ticker: "AAPL", Timestamp: 1718928000, Close: 200, EMA30: 199, EMA50: 198, EMA200: 190, Volume: 50000000},
	}

	require.NoError(t, db.ReplaceAll(staging))
	require.NoError(t, db.ReplaceTopMovers([]models.MTopMover{
		{Category: "overall", List: models.MoversGainers, Rank: 1, Ticker: "AAPL", Name: "Apple Inc.",
			DayClose: 200, TodaysChange: 5, TodaysChangePerc: 2.5, Volume: 50000000},
	}))
}

// -----------------------------------------------------------------------------

func doGet(t *testing.T, s *APIServer, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Engine().ServeHTTP(w, req)

	var body map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	}
	return w, body
}

// -----------------------------------------------------------------------------

func TestGetHealth(t *testing.T) {
	s, _ := newTestServer(t)

	w, body := doGet(t, s, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}

// -----------------------------------------------------------------------------

func TestGetIndices(t *testing.T) {
	s, _ := newTestServer(t)

	w, body := doGet(t, s, "/api/indices")
	assert.Equal(t, http.StatusOK, w.Code)

	indices := body["indices"].([]interface{})
	require.Len(t, indices, 1)
}

// -----------------------------------------------------------------------------

func TestGetIndexHoldings(t *testing.T) {
	s, _ := newTestServer(t)

	w, body := doGet(t, s, "/api/indices/sp500?sort_by=weight&order=desc")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])

	w, _ = doGet(t, s, "/api/indices/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// -----------------------------------------------------------------------------

func TestGetStock(t *testing.T) {
	s, _ := newTestServer(t)

	w, body := doGet(t, s, "/api/stocks/AAPL")
	assert.Equal(t, http.StatusOK, w.Code)

	master := body["master"].(map[string]interface{})
	assert.Equal(t, "Apple Inc.", master["name"])
	assert.NotNil(t, body["stock"])
}

// -----------------------------------------------------------------------------

func TestGetStockLowercasePath(t *testing.T) {
	s, _ := newTestServer(t)

	w, _ := doGet(t, s, "/api/stocks/aapl")
	assert.Equal(t, http.StatusOK, w.Code)
}

// -----------------------------------------------------------------------------

func TestGetStockUnknown404(t *testing.T) {
	s, _ := newTestServer(t)

	w, _ := doGet(t, s, "/api/stocks/NOPE")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// -----------------------------------------------------------------------------

func TestGetStockWithoutDetailRow(t *testing.T) {
	// MSFT is in the master table but has no stocks row: 200 with a
	// null stock payload, never a 404.
	s, _ := newTestServer(t)

	w, body := doGet(t, s, "/api/stocks/MSFT")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, body["stock"])
}

// -----------------------------------------------------------------------------

func TestGetChart(t *testing.T) {
	s, _ := newTestServer(t)

	w, body := doGet(t, s, "/api/stocks/AAPL/chart/1Y")
	assert.Equal(t, http.StatusOK, w.Code)

	points := body["points"].([]interface{})
	require.Len(t, points, 1)

	point := points[0].(map[string]interface{})
	assert.Equal(t, float64(200), point["close"])
	assert.NotEmpty(t, point["label"])
}

// -----------------------------------------------------------------------------

func TestGetChartBadTimeframe(t *testing.T) {
	s, _ := newTestServer(t)

	w, _ := doGet(t, s, "/api/stocks/AAPL/chart/2Y")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// -----------------------------------------------------------------------------

func TestGetChartUnknownTicker(t *testing.T) {
	s, _ := newTestServer(t)

	w, _ := doGet(t, s, "/api/stocks/NOPE/chart/1D")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// -----------------------------------------------------------------------------

func TestGetStocksOverview(t *testing.T) {
	s, _ := newTestServer(t)

	require.NoError(t, utils.WriteRefreshInfo(s.Config.DataDir, models.MRefreshInfo{
		LastUpdated: "Friday, Jun 21, 2024, at 08:00PM, ET.",
		LastDate:    "2024-06-21",
	}))

	w, body := doGet(t, s, "/api/stocks")
	assert.Equal(t, http.StatusOK, w.Code)

	movers := body["movers"].([]interface{})
	require.NotEmpty(t, movers)

	overall := movers[0].(map[string]interface{})
	assert.Equal(t, "overall", overall["category"])
	assert.NotEmpty(t, overall["gainers"])

	tape := body["ticker_tape"].([]interface{})
	assert.Len(t, tape, 2)

	assert.Equal(t, "Friday, Jun 21, 2024, at 08:00PM, ET.", body["last_updated"])
}

// -----------------------------------------------------------------------------

func TestSearch(t *testing.T) {
	s, _ := newTestServer(t)

	w, body := doGet(t, s, "/api/search?q=AA")
	assert.Equal(t, http.StatusOK, w.Code)

	results := body["results"].([]interface{})
	require.Len(t, results, 1)

	first := results[0].(map[string]interface{})
	assert.Equal(t, "AAPL", first["ticker"])
}

// -----------------------------------------------------------------------------

func TestSearchEmptyQuery(t *testing.T) {
	s, _ := newTestServer(t)

	w, body := doGet(t, s, "/api/search")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["results"])
}
