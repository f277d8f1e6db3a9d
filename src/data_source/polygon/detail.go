package polygon

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"stock-tracker/src/analysis"
	"stock-tracker/src/analysis/core"
	"stock-tracker/src/models"
	"stock-tracker/src/utils"
)

// Lookback windows of the daily sub-fetches, in calendar days. 300
// days of closes comfortably cover 200 trading days; 365 cover the
// 52-week range.
const (
	closeLookbackDays = 300
	rangeLookbackDays = 365
	ema30Window       = 30
	ema50Window       = 50
	ema200Window      = 200
)

// -----------------------------------------------------------------------------

// FetchStockDetail merges the per-ticker sub-fetches into one
// best-effort record. Each sub-fetch is isolated: a failure leaves its
// fields nil and never aborts the others. The record is usable only
// when a ticker symbol was resolved; otherwise nil is returned.
func (p *PolygonSource) FetchStockDetail(ticker string) (*models.MStockDetail, error) {
	p.Logger.Info("Fetching data for: %s", ticker)

	detail := &models.MStockDetail{}
	resolved := false

	// (a) company profile and branding
	if err := p.fetchProfile(ticker, detail); err != nil {
		p.Logger.Warning("Profile fetch failed for %s: %v", ticker, err)
	} else {
		resolved = true
	}

	// (b) current-day snapshot
	if snap, err := p.fetchTickerSnapshot(ticker); err != nil {
		p.Logger.Warning("Snapshot fetch failed for %s: %v", ticker, err)
	} else {
		detail.Snapshot = snap
		resolved = true
	}

	// (c) trailing daily closes for the moving averages
	if closes, err := p.fetchDailyCloses(ticker); err != nil {
		p.Logger.Warning("Daily closes fetch failed for %s: %v", ticker, err)
	} else {
		detail.Indicators = analysis.ComputeIndicators(closes)
	}

	// (d) trailing year of highs/lows for the 52-week range
	if highs, lows, err := p.fetchYearRange(ticker); err != nil {
		p.Logger.Warning("52-week range fetch failed for %s: %v", ticker, err)
	} else if low, high, ok := core.Range52W(highs, lows); ok {
		detail.Low52W = &low
		detail.High52W = &high
	}

	// related companies
	if related, err := p.fetchRelatedCompanies(ticker); err != nil {
		p.Logger.Warning("Related companies fetch failed for %s: %v", ticker, err)
	} else {
		detail.RelatedCompanies = related
	}

	if !resolved {
		return nil, nil
	}
	if detail.Ticker == "" {
		detail.Ticker = ticker
	}

	// chart series per timespan
	detail.MinuteBars = p.fetchChartBars(ticker, models.TimespanMinute)
	detail.HourBars = p.fetchChartBars(ticker, models.TimespanHour)
	detail.DayBars = p.fetchChartBars(ticker, models.TimespanDay)

	return detail, nil
}

// -----------------------------------------------------------------------------

func (p *PolygonSource) fetchProfile(ticker string, detail *models.MStockDetail) error {
	body, err := p.get("/v3/reference/tickers/"+ticker, nil)
	if err != nil {
		return err
	}

	var resp tickerDetailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return err
	}
	if resp.Results == nil || resp.Results.Ticker == "" {
		return fmt.Errorf("no ticker in details response")
	}

	r := resp.Results
	detail.Ticker = r.Ticker
	detail.Name = r.Name
	detail.Description = r.Description
	detail.HomepageURL = r.HomepageURL
	detail.Industry = r.SicDescription
	detail.Employees = r.TotalEmployees
	detail.MarketCap = r.MarketCap
	detail.ListDate = r.ListDate

	// Branding is optional in the response; a missing or failed
	// branding lookup leaves the icon nil without failing the profile.
	if r.Branding != nil {
		detail.IconURL = r.Branding.IconURL
	}

	return nil
}

// -----------------------------------------------------------------------------

func (p *PolygonSource) fetchTickerSnapshot(ticker string) (*models.MTickerSnapshot, error) {
	body, err := p.get("/v2/snapshot/locale/us/markets/stocks/tickers/"+ticker, nil)
	if err != nil {
		return nil, err
	}

	var resp singleSnapshotResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	t := resp.Ticker
	if t == nil || t.Ticker == "" {
		return nil, fmt.Errorf("no ticker in snapshot response")
	}

	snap := &models.MTickerSnapshot{Ticker: t.Ticker}
	if t.Day.Open != nil {
		snap.DayOpen = *t.Day.Open
	}
	if t.Day.High != nil {
		snap.DayHigh = *t.Day.High
	}
	if t.Day.Low != nil {
		snap.DayLow = *t.Day.Low
	}
	if t.Day.Close != nil {
		snap.DayClose = *t.Day.Close
	}
	if t.Day.Volume != nil {
		snap.Volume = *t.Day.Volume
	}
	if t.TodaysChange != nil {
		snap.TodaysChange = *t.TodaysChange
	}
	if t.TodaysChangePerc != nil {
		snap.TodaysChangePerc = *t.TodaysChangePerc
	}
	if t.Updated != nil {
		snap.Updated = utils.ToUnixSeconds(*t.Updated, utils.UnitNanos)
	}
	return snap, nil
}

// -----------------------------------------------------------------------------

// fetchDailyCloses returns up to 200 daily closes, NEWEST-FIRST, from
// the trailing ~300 calendar days.
func (p *PolygonSource) fetchDailyCloses(ticker string) ([]float64, error) {
	bars, err := p.fetchAggs(ticker, models.TimespanDay, closeLookbackDays, "desc", 200)
	if err != nil {
		return nil, err
	}

	closes := make([]float64, 0, len(bars))
	for _, b := range bars {
		closes = append(closes, b.Close)
	}
	return closes, nil
}

// -----------------------------------------------------------------------------

func (p *PolygonSource) fetchYearRange(ticker string) (highs, lows []float64, err error) {
	bars, err := p.fetchAggs(ticker, models.TimespanDay, rangeLookbackDays, "asc", 400)
	if err != nil {
		return nil, nil, err
	}

	for _, b := range bars {
		highs = append(highs, b.High)
		lows = append(lows, b.Low)
	}
	return highs, lows, nil
}

// -----------------------------------------------------------------------------

func (p *PolygonSource) fetchRelatedCompanies(ticker string) ([]string, error) {
	body, err := p.get("/v1/related-companies/"+ticker, nil)
	if err != nil {
		return nil, err
	}

	var resp relatedCompaniesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	var related []string
	for _, r := range resp.Results {
		if r.Ticker != "" {
			related = append(related, r.Ticker)
		}
	}
	return related, nil
}

// -----------------------------------------------------------------------------
// Chart series
// -----------------------------------------------------------------------------

// lookbackDaysFor bounds the raw bar fetch per timespan: minutes cover
// the last few sessions (trimmed to the latest one later), hours a
// week, days a year.
func lookbackDaysFor(timespan string) int {
	switch timespan {
	case models.TimespanMinute:
		return 5
	case models.TimespanHour:
		return 7
	default:
		return rangeLookbackDays
	}
}

// -----------------------------------------------------------------------------

// fetchChartBars fetches the raw bars and the three EMA series for one
// timespan and aligns them. Failures degrade to an empty series.
func (p *PolygonSource) fetchChartBars(ticker, timespan string) []models.MChartBar {
	bars, err := p.fetchAggs(ticker, timespan, lookbackDaysFor(timespan), "asc", 5000)
	if err != nil {
		p.Logger.Warning("%s bars fetch failed for %s: %v", timespan, ticker, err)
		return nil
	}

	ema30, err := p.fetchEMA(ticker, timespan, ema30Window)
	if err != nil {
		p.Logger.Warning("EMA %d fetch failed for %s/%s: %v", ema30Window, ticker, timespan, err)
		return nil
	}
	ema50, err := p.fetchEMA(ticker, timespan, ema50Window)
	if err != nil {
		p.Logger.Warning("EMA %d fetch failed for %s/%s: %v", ema50Window, ticker, timespan, err)
		return nil
	}
	ema200, err := p.fetchEMA(ticker, timespan, ema200Window)
	if err != nil {
		p.Logger.Warning("EMA %d fetch failed for %s/%s: %v", ema200Window, ticker, timespan, err)
		return nil
	}

	aligned := analysis.AlignChartBars(ticker, bars, ema30, ema50, ema200)

	if timespan == models.TimespanMinute {
		aligned = lastTradingDayOnly(aligned)
	}
	return aligned
}

// -----------------------------------------------------------------------------

// lastTradingDayOnly trims a time-ascending minute series to the bars
// of its most recent Eastern trading date.
func lastTradingDayOnly(bars []models.MChartBar) []models.MChartBar {
	if len(bars) == 0 {
		return bars
	}

	lastDate := utils.EasternDate(bars[len(bars)-1].Timestamp, utils.UnitSeconds)
	for i := len(bars) - 1; i >= 0; i-- {
		if utils.EasternDate(bars[i].Timestamp, utils.UnitSeconds) != lastDate {
			return bars[i+1:]
		}
	}
	return bars
}

// -----------------------------------------------------------------------------

func (p *PolygonSource) fetchAggs(ticker, timespan string, lookbackDays int, sort string, limit int) ([]models.MRawBar, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -lookbackDays)

	path := fmt.Sprintf("/v2/aggs/ticker/%s/range/1/%s/%s/%s",
		ticker, timespan, from.Format("2006-01-02"), now.Format("2006-01-02"))

	body, err := p.get(path, map[string]string{
		"adjusted": "true",
		"sort":     sort,
		"limit":    strconv.Itoa(limit),
	})
	if err != nil {
		return nil, err
	}

	var resp aggsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	bars := make([]models.MRawBar, 0, len(resp.Results))
	for _, r := range resp.Results {
		bars = append(bars, models.MRawBar{
			Timestamp: utils.ToUnixSeconds(r.Timestamp, utils.UnitMillis),
			Open:      r.Open,
			High:      r.High,
			Low:       r.Low,
			Close:     r.Close,
			Volume:    r.Volume,
		})
	}
	return bars, nil
}

// -----------------------------------------------------------------------------

func (p *PolygonSource) fetchEMA(ticker, timespan string, window int) (map[int64]float64, error) {
	body, err := p.get("/v1/indicators/ema/"+ticker, map[string]string{
		"timespan":    timespan,
		"window":      strconv.Itoa(window),
		"series_type": "close",
		"order":       "desc",
		"limit":       "5000",
	})
	if err != nil {
		return nil, err
	}

	var resp emaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	values := make(map[int64]float64, len(resp.Results.Values))
	for _, v := range resp.Results.Values {
		values[utils.ToUnixSeconds(v.Timestamp, utils.UnitMillis)] = v.Value
	}
	return values, nil
}
