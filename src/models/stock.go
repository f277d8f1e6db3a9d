package models

// MStockMaster is one row per tradable ticker known to the provider.
// The whole table is replaced on every refresh cycle, never patched.
type MStockMaster struct {
	Ticker           string  `json:"ticker"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	TypeDesc         *string `json:"type_desc"` // resolved code description, nil when unknown
	Exchange         string  `json:"exchange"`
	Updated          int64   `json:"updated"` // unix seconds, Eastern day semantics
	DayOpen          float64 `json:"day_open"`
	DayHigh          float64 `json:"day_high"`
	DayLow           float64 `json:"day_low"`
	DayClose         float64 `json:"day_close"`
	Volume           float64 `json:"volume"`
	TodaysChange     float64 `json:"todays_change"`
	TodaysChangePerc float64 `json:"todays_change_perc"`
}

// MStock is the richer per-ticker record, created only for index
// constituents and top movers. Nullable fields stay nil when the
// corresponding sub-fetch failed.
type MStock struct {
	Ticker           string   `json:"ticker"`
	Name             string   `json:"name"`
	Description      *string  `json:"description"`
	HomepageURL      *string  `json:"homepage_url"`
	Industry         *string  `json:"industry"`
	Employees        *int64   `json:"employees"`
	MarketCap        *float64 `json:"market_cap"`
	IconURL          *string  `json:"icon_url"`
	ListDate         *string  `json:"list_date"`
	DayOpen          *float64 `json:"day_open"`
	DayHigh          *float64 `json:"day_high"`
	DayLow           *float64 `json:"day_low"`
	DayClose         *float64 `json:"day_close"`
	Volume           *float64 `json:"volume"`
	TodaysChange     *float64 `json:"todays_change"`
	TodaysChangePerc *float64 `json:"todays_change_perc"`
	DMA50            *float64 `json:"dma_50"`
	DMA200           *float64 `json:"dma_200"`
	DMA200PercDiff   *float64 `json:"dma_200_perc_diff"`
	Low52W           *float64 `json:"low_52w"`
	High52W          *float64 `json:"high_52w"`
	RelatedCompanies string   `json:"related_companies"` // comma-joined tickers
	LastUpdated      int64    `json:"last_updated"`
}
