package models

// MStaging collects every record of one refresh cycle before the
// atomic replace. One staging session per cycle; the seen-set
// guarantees a ticker's detail is fetched at most once per cycle.
type MStaging struct {
	Masters    []MStockMaster
	Stocks     []MStock
	Indices    []MIndex
	Holdings   []MIndexHolding
	MinuteBars []MChartBar
	HourBars   []MChartBar
	DayBars    []MChartBar

	seen map[string]bool
}

// -----------------------------------------------------------------------------

func NewStaging() *MStaging {
	return &MStaging{seen: make(map[string]bool)}
}

// -----------------------------------------------------------------------------

// Seen reports whether the ticker was already processed this cycle.
func (s *MStaging) Seen(ticker string) bool {
	return s.seen[ticker]
}

// -----------------------------------------------------------------------------

// MarkSeen records a ticker as processed for this cycle.
func (s *MStaging) MarkSeen(ticker string) {
	s.seen[ticker] = true
}

// -----------------------------------------------------------------------------

// AddStockDetail stages a fetched stock and its chart bars.
func (s *MStaging) AddStockDetail(stock MStock, minute, hour, day []MChartBar) {
	s.Stocks = append(s.Stocks, stock)
	s.MinuteBars = append(s.MinuteBars, minute...)
	s.HourBars = append(s.HourBars, hour...)
	s.DayBars = append(s.DayBars, day...)
}
