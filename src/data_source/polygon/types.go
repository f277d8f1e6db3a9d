package polygon

// -----------------------------------------------------------------------------
// Provider response shapes. Pointer fields handle nulls and absent
// keys; validation happens at parse time, not in the pipeline.
// -----------------------------------------------------------------------------

type snapshotDay struct {
	Open   *float64 `json:"o"`
	High   *float64 `json:"h"`
	Low    *float64 `json:"l"`
	Close  *float64 `json:"c"`
	Volume *float64 `json:"v"`
}

type snapshotTicker struct {
	Ticker           string      `json:"ticker"`
	TodaysChange     *float64    `json:"todaysChange"`
	TodaysChangePerc *float64    `json:"todaysChangePerc"`
	Updated          *int64      `json:"updated"` // nanoseconds
	Day              snapshotDay `json:"day"`
}

type snapshotResponse struct {
	Status  string           `json:"status"`
	Count   int              `json:"count"`
	Tickers []snapshotTicker `json:"tickers"`
}

type singleSnapshotResponse struct {
	Status string          `json:"status"`
	Ticker *snapshotTicker `json:"ticker"`
}

// -----------------------------------------------------------------------------

type referenceTicker struct {
	Ticker          string `json:"ticker"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	PrimaryExchange string `json:"primary_exchange"`
}

type referenceTickersResponse struct {
	Results []referenceTicker `json:"results"`
	NextURL string            `json:"next_url"`
}

type tickerTypesResponse struct {
	Results []struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"results"`
}

// -----------------------------------------------------------------------------

type tickerBranding struct {
	IconURL *string `json:"icon_url"`
}

type tickerDetailsResponse struct {
	Results *struct {
		Ticker         string          `json:"ticker"`
		Name           string          `json:"name"`
		Description    *string         `json:"description"`
		HomepageURL    *string         `json:"homepage_url"`
		SicDescription *string         `json:"sic_description"`
		TotalEmployees *int64          `json:"total_employees"`
		MarketCap      *float64        `json:"market_cap"`
		ListDate       *string         `json:"list_date"`
		Branding       *tickerBranding `json:"branding"`
	} `json:"results"`
}

type relatedCompaniesResponse struct {
	Results []struct {
		Ticker string `json:"ticker"`
	} `json:"results"`
}

// -----------------------------------------------------------------------------

type aggBar struct {
	Timestamp int64   `json:"t"` // milliseconds
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    float64 `json:"v"`
}

type aggsResponse struct {
	Results      []aggBar `json:"results"`
	ResultsCount int      `json:"resultsCount"`
}

// -----------------------------------------------------------------------------

type emaResponse struct {
	Results struct {
		Values []struct {
			Timestamp int64   `json:"timestamp"` // milliseconds
			Value     float64 `json:"value"`
		} `json:"values"`
	} `json:"results"`
}

// -----------------------------------------------------------------------------

type marketStatusResponse struct {
	Market     string `json:"market"`
	ServerTime string `json:"serverTime"`
}
