package models

// Timespans of the persisted chart bar tables.
const (
	TimespanMinute = "minute"
	TimespanHour   = "hour"
	TimespanDay    = "day"
)

// MChartBar is one aligned chart point. Only timestamps present in the
// close, all three EMA, and volume series survive alignment, so every
// stored bar is fully populated.
type MChartBar struct {
	Ticker    string  `json:"ticker"`
	Timestamp int64   `json:"timestamp"` // unix seconds
	Close     float64 `json:"close"`
	EMA30     float64 `json:"ema_30"`
	EMA50     float64 `json:"ema_50"`
	EMA200    float64 `json:"ema_200"`
	Volume    float64 `json:"volume"`
}

// MRawBar is an unaligned provider aggregate bar.
type MRawBar struct {
	Timestamp int64   `json:"timestamp"` // unix seconds
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}
