package models

// Top-mover list identifiers.
const (
	MoversGainers   = "gainers"
	MoversLosers    = "losers"
	MoversTopTraded = "top_traded"
)

// CategoryOverall is the whole-market top-movers category; the other
// categories are index slugs.
const CategoryOverall = "overall"

// MTopMover is one persisted row of a ranked movers list.
type MTopMover struct {
	Category         string  `json:"category"` // "overall" or an index slug
	List             string  `json:"list"`     // gainers, losers or top_traded
	Rank             int     `json:"rank"`     // 1-based position within the list
	Ticker           string  `json:"ticker"`
	Name             string  `json:"name"`
	DayClose         float64 `json:"day_close"`
	TodaysChange     float64 `json:"todays_change"`
	TodaysChangePerc float64 `json:"todays_change_perc"`
	Volume           float64 `json:"volume"`
}

// MTopMovers groups the three lists of one category.
type MTopMovers struct {
	Category  string      `json:"category"`
	Name      string      `json:"name"`
	Gainers   []MTopMover `json:"gainers"`
	Losers    []MTopMover `json:"losers"`
	TopTraded []MTopMover `json:"top_traded"`
}
