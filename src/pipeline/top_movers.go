package pipeline

import (
	"stock-tracker/src/models"
)

// MoverIndexSlugs are the index categories ranked alongside the
// whole-market lists.
var MoverIndexSlugs = []string{"sp500", "nasdaq100", "dowjones"}

// -----------------------------------------------------------------------------

// RunTopMovers is the second pass over the freshly replaced dataset:
// rank the whole market and the major indices, backfill detail rows
// for movers that were not index constituents, and persist the lists.
func (p *Populator) RunTopMovers() error {
	limit := p.Config.Pipeline.NumTopStocks

	gainers, losers, topTraded, err := p.DB.TopMoversOverall(limit)
	if err != nil {
		return err
	}

	movers := make([]models.MTopMover, 0, limit*3*(len(MoverIndexSlugs)+1))
	movers = append(movers, gainers...)
	movers = append(movers, losers...)
	movers = append(movers, topTraded...)

	for _, slug := range MoverIndexSlugs {
		g, l, t, err := p.DB.TopMoversForIndex(slug, limit)
		if err != nil {
			return err
		}
		movers = append(movers, g...)
		movers = append(movers, l...)
		movers = append(movers, t...)
	}

	if err := p.backfillMoverStocks(movers); err != nil {
		// Mover rows carry their own display fields; missing detail
		// rows only degrade the drill-down view.
		p.Logger.Warning("Mover detail backfill failed: %v", err)
	}

	p.Logger.Info("Persisting %d top-mover rows", len(movers))
	return p.DB.ReplaceTopMovers(movers)
}

// -----------------------------------------------------------------------------

// backfillMoverStocks fetches detail records for movers that have no
// stocks row yet. Whole-market movers are often not index members.
func (p *Populator) backfillMoverStocks(movers []models.MTopMover) error {
	tickers := make([]string, 0, len(movers))
	for _, m := range movers {
		tickers = append(tickers, m.Ticker)
	}

	missing, err := p.DB.MissingStockTickers(tickers)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}

	p.Logger.Info("Backfilling detail for %d mover tickers", len(missing))

	now := p.Now().Unix()
	var stocks []models.MStock
	var minute, hour, day []models.MChartBar

	for _, ticker := range missing {
		detail, err := p.Source.FetchStockDetail(ticker)
		if err != nil {
			p.Logger.Warning("Detail fetch failed for mover %s: %v", ticker, err)
			continue
		}
		if detail == nil {
			continue
		}
		stocks = append(stocks, StockFromDetail(detail, now))
		minute = append(minute, detail.MinuteBars...)
		hour = append(hour, detail.HourBars...)
		day = append(day, detail.DayBars...)
	}

	if len(stocks) == 0 {
		return nil
	}
	return p.DB.InsertStocks(stocks, minute, hour, day)
}
