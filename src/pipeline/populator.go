package pipeline

import (
	"strings"
	"time"

	"stock-tracker/src/interfaces"
	"stock-tracker/src/logger"
	"stock-tracker/src/models"
	"stock-tracker/src/scraper"
	"stock-tracker/src/utils"
)

// -----------------------------------------------------------------------------
// Populator runs one nightly refresh cycle: bulk snapshot, index
// scraping, per-ticker details, atomic table replace, then the
// top-movers pass. The database stays untouched until the staged
// dataset commits in one transaction.
// -----------------------------------------------------------------------------

type Populator struct {
	Config  *models.MConfig
	DB      interfaces.IDatabase
	Source  interfaces.IMarketData
	Scraper interfaces.IConstituentScraper
	Gate    *utils.MarketGate
	Logger  *logger.Logger

	// Now is stubbed in tests; defaults to time.Now.
	Now func() time.Time
}

// -----------------------------------------------------------------------------

func NewPopulator(cfg *models.MConfig, db interfaces.IDatabase, source interfaces.IMarketData,
	scr interfaces.IConstituentScraper, gate *utils.MarketGate, log *logger.Logger) *Populator {
	return &Populator{
		Config:  cfg,
		DB:      db,
		Source:  source,
		Scraper: scr,
		Gate:    gate,
		Logger:  log,
		Now:     time.Now,
	}
}

// -----------------------------------------------------------------------------

// Run executes one full refresh cycle. Skipped entirely when the
// market gate reports a closed day, unless the config overrides it.
func (p *Populator) Run() error {
	start := p.Now()

	p.refreshMarketStatus()

	if !p.Config.Pipeline.IgnoreMarketGate && !p.Gate.MarketOpen(start) {
		p.Logger.Info("Market closed on %s. Skipping refresh cycle.", start.In(utils.Eastern).Format(utils.DateFormat))
		return nil
	}

	staging, err := p.buildStaging()
	if err != nil {
		return err
	}

	p.Logger.Info("Staging complete: %d masters, %d stocks, %d indices, %d holdings",
		len(staging.Masters), len(staging.Stocks), len(staging.Indices), len(staging.Holdings))

	if err := p.DB.ReplaceAll(staging); err != nil {
		p.Logger.Error("Replace transaction failed, previous dataset left intact: %v", err)
		return err
	}

	if err := p.writeRefreshMarker(staging); err != nil {
		p.Logger.Warning("Refresh marker write failed: %v", err)
	}

	if err := p.RunTopMovers(); err != nil {
		p.Logger.Error("Top-movers pass failed: %v", err)
		return err
	}

	p.Logger.Info("Refresh cycle finished in %s", p.Now().Sub(start).Round(time.Second))
	return nil
}

// -----------------------------------------------------------------------------

// refreshMarketStatus persists the provider's current status before
// the gate decision. Fetch failure leaves the previous marker in
// place, so the gate falls back to whatever it knew last.
func (p *Populator) refreshMarketStatus() {
	status, err := p.Source.FetchMarketStatus()
	if err != nil {
		p.Logger.Warning("Market status fetch failed: %v", err)
		return
	}
	if err := utils.WriteMarketStatus(p.Config.DataDir, *status); err != nil {
		p.Logger.Warning("Market status marker write failed: %v", err)
	}
}

// -----------------------------------------------------------------------------

// buildStaging assembles the complete dataset of one cycle in memory.
func (p *Populator) buildStaging() (*models.MStaging, error) {
	staging := models.NewStaging()

	snapshot, err := p.Source.FetchMarketSnapshot()
	if err != nil {
		// A cycle with zero master rows still replaces holdings, so a
		// snapshot outage degrades data instead of aborting the night.
		p.Logger.Error("Market snapshot failed: %v. Proceeding with zero master rows.", err)
	}

	for _, record := range snapshot {
		staging.Masters = append(staging.Masters, models.MStockMaster(record))
	}

	now := p.Now().Unix()
	for _, index := range scraper.Indices {
		p.stageIndex(staging, index, snapshot, now)
	}

	return staging, nil
}

// -----------------------------------------------------------------------------

// stageIndex scrapes one index and stages it with its holdings and
// the detail records of its constituents. A failed scrape stages the
// index with an empty membership rather than failing the cycle.
func (p *Populator) stageIndex(staging *models.MStaging, index models.MIndexSpec,
	snapshot map[string]models.MTickerSnapshot, now int64) {

	holdings, err := p.Scraper.FetchHoldings(index)
	if err != nil {
		p.Logger.Warning("Holdings scrape failed for %s: %v. Index staged with empty membership.", index.Slug, err)
		holdings = nil
	}

	staging.Indices = append(staging.Indices, models.MIndex{
		Slug:        index.Slug,
		Name:        index.Name,
		URL:         p.Config.Scraper.BaseURL + index.Path,
		LastUpdated: now,
	})

	// One holding row per (index, ticker); duplicate page rows keep
	// their first occurrence.
	staged := make(map[string]bool)

	for _, h := range holdings {
		if staged[h.Ticker] {
			continue
		}
		staged[h.Ticker] = true

		staging.Holdings = append(staging.Holdings, models.MIndexHolding{
			IndexSlug: index.Slug,
			Ticker:    h.Ticker,
			Rank:      h.Rank,
			Weight:    h.Weight,
		})

		if h.Ticker == scraper.UnknownTicker {
			continue
		}
		p.stageStockDetail(staging, h.Ticker, snapshot, now)
	}
}

// -----------------------------------------------------------------------------

// stageStockDetail fetches and stages the detail record of one ticker,
// at most once per cycle. Tickers absent from the master snapshot are
// skipped: a stocks row without its master row would break the FK.
func (p *Populator) stageStockDetail(staging *models.MStaging, ticker string,
	snapshot map[string]models.MTickerSnapshot, now int64) {

	if staging.Seen(ticker) {
		return
	}
	staging.MarkSeen(ticker)

	if _, ok := snapshot[ticker]; !ok {
		p.Logger.Warning("Ticker %s not in master snapshot. Detail skipped.", ticker)
		return
	}

	detail, err := p.Source.FetchStockDetail(ticker)
	if err != nil {
		p.Logger.Warning("Detail fetch failed for %s: %v", ticker, err)
		return
	}
	if detail == nil {
		p.Logger.Warning("Ticker %s unresolved by provider. Detail skipped.", ticker)
		return
	}

	staging.AddStockDetail(StockFromDetail(detail, now), detail.MinuteBars, detail.HourBars, detail.DayBars)
}

// -----------------------------------------------------------------------------

// StockFromDetail flattens a best-effort detail record into the
// persisted stocks row.
func StockFromDetail(detail *models.MStockDetail, now int64) models.MStock {
	stock := models.MStock{
		Ticker:           detail.Ticker,
		Name:             detail.Name,
		Description:      detail.Description,
		HomepageURL:      detail.HomepageURL,
		Industry:         detail.Industry,
		Employees:        detail.Employees,
		MarketCap:        detail.MarketCap,
		IconURL:          detail.IconURL,
		ListDate:         detail.ListDate,
		DMA50:            detail.Indicators.DMA50,
		DMA200:           detail.Indicators.DMA200,
		DMA200PercDiff:   detail.Indicators.DMA200PercDiff,
		Low52W:           detail.Low52W,
		High52W:          detail.High52W,
		RelatedCompanies: strings.Join(detail.RelatedCompanies, ","),
		LastUpdated:      now,
	}

	if snap := detail.Snapshot; snap != nil {
		stock.DayOpen = &snap.DayOpen
		stock.DayHigh = &snap.DayHigh
		stock.DayLow = &snap.DayLow
		stock.DayClose = &snap.DayClose
		stock.Volume = &snap.Volume
		stock.TodaysChange = &snap.TodaysChange
		stock.TodaysChangePerc = &snap.TodaysChangePerc
	}

	return stock
}

// -----------------------------------------------------------------------------

// writeRefreshMarker records the freshness of a committed cycle. The
// trading date comes from the newest master-row timestamp, so a late
// nightly run still reports the session it captured.
func (p *Populator) writeRefreshMarker(staging *models.MStaging) error {
	now := p.Now()

	var latest int64
	for _, m := range staging.Masters {
		if m.Updated > latest {
			latest = m.Updated
		}
	}

	lastDate := now.In(utils.Eastern).Format(utils.DateFormat)
	if latest > 0 {
		lastDate = utils.EasternDate(latest, utils.UnitSeconds)
	}

	return utils.WriteRefreshInfo(p.Config.DataDir, models.MRefreshInfo{
		LastUpdated: utils.FormatEastern(now),
		LastDate:    lastDate,
	})
}
