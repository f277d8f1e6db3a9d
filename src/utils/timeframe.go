package utils

import (
	"time"

	"stock-tracker/src/models"
)

// -----------------------------------------------------------------------------
// Chart timeframe options. 1D renders from minute bars, 1W from hour
// bars, the rest from day bars over a bounded lookback.
// -----------------------------------------------------------------------------

// TimeframeOptions in display order.
var TimeframeOptions = []string{"1D", "1W", "1M", "3M", "6M", "YTD", "1Y"}

// -----------------------------------------------------------------------------

// ValidTimeframe reports whether tf is a known option.
func ValidTimeframe(tf string) bool {
	for _, opt := range TimeframeOptions {
		if opt == tf {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------

// TimespanFor maps a timeframe to the bar table it reads from.
func TimespanFor(tf string) string {
	switch tf {
	case "1D":
		return models.TimespanMinute
	case "1W":
		return models.TimespanHour
	default:
		return models.TimespanDay
	}
}

// -----------------------------------------------------------------------------

// LookbackStart returns the inclusive start of the timeframe's chart
// window relative to the last refreshed trading date. Timeframes whose
// table already holds exactly the wanted range (1D, 1W, 1Y) return 0:
// the whole table is read.
func LookbackStart(tf string, lastDate time.Time) int64 {
	switch tf {
	case "1M":
		return lastDate.AddDate(0, -1, 0).Unix()
	case "3M":
		return lastDate.AddDate(0, -3, 0).Unix()
	case "6M":
		return lastDate.AddDate(0, -6, 0).Unix()
	case "YTD":
		return time.Date(lastDate.Year(), time.January, 1, 0, 0, 0, 0, Eastern).Unix()
	default:
		return 0
	}
}

// -----------------------------------------------------------------------------

// DateLayoutFor is the display layout of chart point labels.
func DateLayoutFor(tf string) string {
	switch tf {
	case "1D":
		return "3:04 PM"
	case "1W":
		return "Jan 02, 3 PM"
	default:
		return "Jan 02, 2006"
	}
}
