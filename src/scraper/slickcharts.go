package scraper

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"stock-tracker/src/helpers"
	"stock-tracker/src/interfaces"
	"stock-tracker/src/logger"
	"stock-tracker/src/models"

	"github.com/PuerkitoBio/goquery"
)

// UnknownTicker is recorded for holdings whose ticker cell is empty,
// so the row's weight still counts toward the index.
const UnknownTicker = "N/A"

// -----------------------------------------------------------------------------

// Indices is the fixed set of scraped index pages.
var Indices = []models.MIndexSpec{
	{Slug: "sp500", Name: "S&P 500 Index", Path: "/sp500"},
	{Slug: "nasdaq100", Name: "Nasdaq 100 Index", Path: "/nasdaq100"},
	{Slug: "dowjones", Name: "Dow Jones", Path: "/dowjones"},
	{Slug: "magnificent7", Name: "Magnificent Seven", Path: "/magnificent7"},
	{Slug: "berkshire-hathaway", Name: "Berkshire Hathaway Holdings", Path: "/berkshire-hathaway"},
	{Slug: "ark-innovations", Name: "Ark Innovation Index", Path: "/etf/ark-invest/ARKK"},
}

// -----------------------------------------------------------------------------

// ConstituentScraper parses index holdings tables. One scrape per
// request with a fixed politeness delay; failures degrade to an empty
// holdings list and are never retried.
type ConstituentScraper struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewConstituentScraper(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *ConstituentScraper {
	return &ConstituentScraper{
		Config:  cfg,
		Network: netMgr,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

// FetchHoldings scrapes one index page and returns its ordered
// constituent rows. A row needs at least 4 cells to count as a
// holding: rank, name, ticker, weight-with-percent-sign.
func (s *ConstituentScraper) FetchHoldings(index models.MIndexSpec) ([]models.MScrapedHolding, error) {
	url := s.Config.Scraper.BaseURL + index.Path
	s.Logger.Info("Scraping <%s>...", url)

	body, err := s.Network.GetOnce(url, nil)

	// Politeness delay regardless of outcome; the source sees a fixed
	// request cadence even across failing indices.
	time.Sleep(time.Duration(s.Config.Scraper.DelaySeconds) * time.Second)

	if err != nil {
		return nil, helpers.NewScrapeError("holdings page fetch failed for "+index.Slug, err)
	}

	return s.parseHoldings(index, body)
}

// -----------------------------------------------------------------------------

func (s *ConstituentScraper) parseHoldings(index models.MIndexSpec, body []byte) ([]models.MScrapedHolding, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, helpers.NewScrapeError("holdings page parse failed for "+index.Slug, err)
	}

	table := doc.Find("table.table").First()
	if table.Length() == 0 {
		return nil, helpers.NewScrapeError("no holdings table found for "+index.Slug, nil)
	}

	var holdings []models.MScrapedHolding

	table.Find("tbody tr").Each(func(i int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 4 {
			return
		}

		ticker := strings.TrimSpace(cols.Eq(2).Text())
		if ticker == "" {
			ticker = UnknownTicker
		}

		holdings = append(holdings, models.MScrapedHolding{
			Rank:   parseRank(cols.Eq(0).Text(), len(holdings)+1),
			Name:   strings.TrimSpace(cols.Eq(1).Text()),
			Ticker: ticker,
			Weight: parseWeight(cols.Eq(3).Text()),
		})
	})

	s.Logger.Info("Scraped %d holdings for %s", len(holdings), index.Slug)
	return holdings, nil
}

// -----------------------------------------------------------------------------

// parseRank falls back to the row position when the rank cell is not a
// number.
func parseRank(text string, position int) int {
	rank, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return position
	}
	return rank
}

// -----------------------------------------------------------------------------

// parseWeight strips the percent sign; an unparseable cell yields nil,
// not a dropped row.
func parseWeight(text string) *float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, "%", ""))
	// Large-cap weights render with thousands separators on some pages
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return nil
	}
	weight, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &weight
}
