package models

// MTickerSnapshot is one flat record of the bulk market snapshot.
// Records missing any required field are dropped by the fetcher and
// never reach this type.
type MTickerSnapshot struct {
	Ticker           string  `json:"ticker"`
	Name             string  `json:"name"`
	Type             string  `json:"type"`
	TypeDesc         *string `json:"type_desc"`
	Exchange         string  `json:"exchange"`
	Updated          int64   `json:"updated"` // unix seconds
	DayOpen          float64 `json:"day_open"`
	DayHigh          float64 `json:"day_high"`
	DayLow           float64 `json:"day_low"`
	DayClose         float64 `json:"day_close"`
	Volume           float64 `json:"volume"`
	TodaysChange     float64 `json:"todays_change"`
	TodaysChangePerc float64 `json:"todays_change_perc"`
}
