package models

// MIndicators holds the moving-average figures computed from a
// newest-first series of daily closes.
type MIndicators struct {
	LastClose      *float64 `json:"last_close"`
	DMA50          *float64 `json:"dma_50"`
	DMA200         *float64 `json:"dma_200"`
	DMA200PercDiff *float64 `json:"dma_200_perc_diff"`
}

// MStockDetail is the best-effort merge of the per-ticker sub-fetches.
// Usable only when Ticker was resolved; unresolved fields stay nil.
type MStockDetail struct {
	Ticker           string
	Name             string
	Description      *string
	HomepageURL      *string
	Industry         *string
	Employees        *int64
	MarketCap        *float64
	IconURL          *string
	ListDate         *string
	Snapshot         *MTickerSnapshot
	Indicators       MIndicators
	Low52W           *float64
	High52W          *float64
	RelatedCompanies []string
	MinuteBars       []MChartBar
	HourBars         []MChartBar
	DayBars          []MChartBar
}
