package models

// MRefreshInfo is the on-disk freshness marker written after a
// successful refresh cycle and read by the web layer.
type MRefreshInfo struct {
	LastUpdated string `json:"last_updated"` // formatted Eastern timestamp
	LastDate    string `json:"last_date"`    // YYYY-MM-DD Eastern trading date
}

// MMarketStatus is the on-disk market-open gate consulted before a
// refresh is attempted.
type MMarketStatus struct {
	Market     string `json:"market_status"` // "open", "closed", "extended-hours"
	ServerTime string `json:"server_time"`
}
