package server

import (
	"net/http"
	"strings"
	"time"

	"stock-tracker/src/analysis"
	"stock-tracker/src/models"
	"stock-tracker/src/pipeline"
	"stock-tracker/src/scraper"
	"stock-tracker/src/utils"

	"github.com/gin-gonic/gin"
)

// tickerTapeSize is the number of most-traded tickers sent for the
// scrolling tape.
const tickerTapeSize = 20

// searchLimit caps search suggestions.
const searchLimit = 10

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "name": s.Config.Name})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getIndices(c *gin.Context) {
	indices, err := s.DB.GetAllIndices()
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"indices":      indices,
		"last_updated": s.lastUpdated(),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getIndex(c *gin.Context) {
	slug := c.Param("slug")

	index, err := s.DB.GetIndex(slug)
	if err != nil {
		s.fail(c, err)
		return
	}
	if index == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown index"})
		return
	}

	sortBy := c.DefaultQuery("sort_by", "weight")
	order := c.DefaultQuery("order", "desc")

	var filters []string
	if raw := c.Query("filters"); raw != "" {
		filters = strings.Split(raw, ",")
	}

	holdings, err := s.DB.GetIndexHoldings(slug, sortBy, order, filters)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"index":        index,
		"holdings":     holdings,
		"count":        len(holdings),
		"last_updated": s.lastUpdated(),
	})
}

// -----------------------------------------------------------------------------

// getStocksOverview is the landing payload: ranked movers per
// category, the ticker tape and the data freshness marker.
func (s *APIServer) getStocksOverview(c *gin.Context) {
	categories := append([]string{models.CategoryOverall}, pipeline.MoverIndexSlugs...)

	var movers []models.MTopMovers
	for _, category := range categories {
		rows, err := s.DB.GetTopMovers(category)
		if err != nil {
			s.fail(c, err)
			return
		}
		movers = append(movers, groupMovers(category, rows))
	}

	tape, err := s.DB.GetTickerTape(tickerTapeSize)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"movers":       movers,
		"ticker_tape":  tape,
		"last_updated": s.lastUpdated(),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getStock(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))

	master, err := s.DB.GetStockMaster(ticker)
	if err != nil {
		s.fail(c, err)
		return
	}
	if master == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown ticker"})
		return
	}

	// The richer row only exists for index constituents and movers.
	stock, err := s.DB.GetStock(ticker)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"master":       master,
		"stock":        stock,
		"timeframes":   utils.TimeframeOptions,
		"last_updated": s.lastUpdated(),
	})
}

// -----------------------------------------------------------------------------

// chartPoint is one rendered chart sample.
type chartPoint struct {
	Timestamp int64   `json:"timestamp"`
	Label     string  `json:"label"`
	Close     float64 `json:"close"`
	EMA30     float64 `json:"ema_30"`
	EMA50     float64 `json:"ema_50"`
	EMA200    float64 `json:"ema_200"`
	Volume    float64 `json:"volume"`
}

func (s *APIServer) getChart(c *gin.Context) {
	ticker := strings.ToUpper(c.Param("ticker"))
	timeframe := c.Param("timeframe")

	if !utils.ValidTimeframe(timeframe) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown timeframe"})
		return
	}

	master, err := s.DB.GetStockMaster(ticker)
	if err != nil {
		s.fail(c, err)
		return
	}
	if master == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown ticker"})
		return
	}

	fromTs := utils.LookbackStart(timeframe, s.lastTradingDate())

	bars, err := s.DB.GetChartBars(ticker, utils.TimespanFor(timeframe), fromTs)
	if err != nil {
		s.fail(c, err)
		return
	}

	layout := utils.DateLayoutFor(timeframe)
	points := make([]chartPoint, 0, len(bars))
	for _, b := range bars {
		points = append(points, chartPoint{
			Timestamp: b.Timestamp,
			Label:     utils.ToEastern(b.Timestamp, utils.UnitSeconds).Format(layout),
			Close:     b.Close,
			EMA30:     b.EMA30,
			EMA50:     b.EMA50,
			EMA200:    b.EMA200,
			Volume:    b.Volume,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"ticker":         ticker,
		"timeframe":      timeframe,
		"points":         points,
		"change_percent": analysis.ChangePercent(bars),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"results": []models.MSearchResult{}})
		return
	}

	results, err := s.DB.SearchStocks(query, searchLimit)
	if err != nil {
		s.fail(c, err)
		return
	}
	if results == nil {
		results = []models.MSearchResult{}
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func (s *APIServer) fail(c *gin.Context, err error) {
	s.Logger.Error("Request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// -----------------------------------------------------------------------------

// lastUpdated reads the freshness marker; empty string when no cycle
// has committed yet.
func (s *APIServer) lastUpdated() string {
	info, err := utils.ReadRefreshInfo(s.Config.DataDir)
	if err != nil || info == nil {
		return ""
	}
	return info.LastUpdated
}

// -----------------------------------------------------------------------------

// lastTradingDate anchors chart lookbacks on the refreshed session,
// not the wall clock, so charts stay coherent over a weekend.
func (s *APIServer) lastTradingDate() time.Time {
	info, err := utils.ReadRefreshInfo(s.Config.DataDir)
	if err == nil && info != nil {
		if t, perr := time.ParseInLocation(utils.DateFormat, info.LastDate, utils.Eastern); perr == nil {
			return t
		}
	}
	return time.Now().In(utils.Eastern)
}

// -----------------------------------------------------------------------------

// groupMovers splits flat mover rows of one category into its three
// ranked lists.
func groupMovers(category string, rows []models.MTopMover) models.MTopMovers {
	group := models.MTopMovers{
		Category: category,
		Name:     moverCategoryName(category),
	}

	for _, m := range rows {
		switch m.List {
		case models.MoversGainers:
			group.Gainers = append(group.Gainers, m)
		case models.MoversLosers:
			group.Losers = append(group.Losers, m)
		case models.MoversTopTraded:
			group.TopTraded = append(group.TopTraded, m)
		}
	}

	return group
}

// -----------------------------------------------------------------------------

func moverCategoryName(category string) string {
	if category == models.CategoryOverall {
		return "Overall Market"
	}
	for _, index := range scraper.Indices {
		if index.Slug == category {
			return index.Name
		}
	}
	return category
}
