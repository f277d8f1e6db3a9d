package utils

import (
	"time"

	"stock-tracker/src/logger"

	"github.com/scmhub/calendar"
)

// -----------------------------------------------------------------------------
// MarketGate decides whether a refresh cycle should run. The persisted
// market-status marker is authoritative; when it is missing the NYSE
// trading calendar serves as fallback.
// -----------------------------------------------------------------------------

type MarketGate struct {
	DataDir  string
	Calendar *calendar.Calendar
	Fallback bool
	Logger   *logger.Logger
}

// -----------------------------------------------------------------------------

func NewMarketGate(dataDir string, log *logger.Logger) *MarketGate {
	// All tracked tickers trade on US exchanges; xnys covers the
	// NYSE/Nasdaq session and holidays (ISO 10383 MIC).
	cal := calendar.GetCalendar("xnys")
	if cal == nil {
		log.Warning("Failed to load xnys calendar. Using simple fallback (Mon-Fri).")
		return &MarketGate{DataDir: dataDir, Fallback: true, Logger: log}
	}
	return &MarketGate{DataDir: dataDir, Calendar: cal, Logger: log}
}

// -----------------------------------------------------------------------------

// MarketOpen reports whether the market counts as open for refresh
// purposes at the given instant.
func (g *MarketGate) MarketOpen(now time.Time) bool {
	status, err := ReadMarketStatus(g.DataDir)
	if err != nil {
		g.Logger.Warning("Market status marker unreadable: %v. Falling back to calendar.", err)
	}
	if status != nil {
		return status.Market == "open"
	}

	if g.Fallback {
		weekday := now.In(Eastern).Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return g.Calendar.IsOpen(now)
}
