package models

// MIndex is a named, sluggified market index.
type MIndex struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	LastUpdated int64  `json:"last_updated"`
}

// MIndexHolding joins an index to a constituent stock with its weight.
type MIndexHolding struct {
	IndexSlug string   `json:"index_slug"`
	Ticker    string   `json:"ticker"`
	Rank      int      `json:"rank"`
	Weight    *float64 `json:"weight"` // percent of index, nil when the cell was empty
}

// MScrapedHolding is one parsed row of an index holdings page.
type MScrapedHolding struct {
	Rank   int      `json:"rank"`
	Name   string   `json:"name"`
	Ticker string   `json:"ticker"` // "N/A" sentinel when the cell was empty
	Weight *float64 `json:"weight"` // percent sign stripped, nil when unparseable
}
