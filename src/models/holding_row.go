package models

// MIndexSpec identifies one of the statically known scraped indices.
type MIndexSpec struct {
	Slug string
	Name string
	Path string // path of the holdings page under the scraper base URL
}

// MIndexHoldingRow is one row of the index detail view: the holding's
// weight joined with the constituent stock's display fields.
type MIndexHoldingRow struct {
	Weight           *float64 `json:"weight"`
	Ticker           string   `json:"ticker"`
	Name             string   `json:"name"`
	DayClose         *float64 `json:"day_close"`
	Low52W           *float64 `json:"low_52w"`
	High52W          *float64 `json:"high_52w"`
	TodaysChange     *float64 `json:"todays_change"`
	TodaysChangePerc *float64 `json:"todays_change_perc"`
	DMA200           *float64 `json:"dma_200"`
	DMA200PercDiff   *float64 `json:"dma_200_perc_diff"`
}

// MSearchResult is one search suggestion.
type MSearchResult struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}
