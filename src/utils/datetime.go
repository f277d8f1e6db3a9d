package utils

import (
	"time"
	// Embedded tzdata keeps Eastern DST rules correct on hosts
	// without a system zone database.
	_ "time/tzdata"
)

// -----------------------------------------------------------------------------
// Eastern-time conversion. The provider reports epoch timestamps at
// second, millisecond, microsecond or nanosecond granularity depending
// on the endpoint; every conversion goes through here so a unit
// mismatch cannot slip in silently.
// -----------------------------------------------------------------------------

type EpochUnit int

const (
	UnitSeconds EpochUnit = iota
	UnitMillis
	UnitMicros
	UnitNanos
)

// Eastern is the single timezone used for day-boundary semantics.
var Eastern = mustLoadEastern()

func mustLoadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		panic(err)
	}
	return loc
}

// -----------------------------------------------------------------------------

// ToEastern converts a provider epoch value of the given unit into an
// Eastern-time instant.
func ToEastern(epoch int64, unit EpochUnit) time.Time {
	var t time.Time
	switch unit {
	case UnitMillis:
		t = time.Unix(epoch/1000, (epoch%1000)*int64(time.Millisecond))
	case UnitMicros:
		t = time.UnixMicro(epoch)
	case UnitNanos:
		t = time.Unix(0, epoch)
	default:
		t = time.Unix(epoch, 0)
	}
	return t.In(Eastern)
}

// -----------------------------------------------------------------------------

// ToUnixSeconds normalizes a provider epoch value to unix seconds.
func ToUnixSeconds(epoch int64, unit EpochUnit) int64 {
	return ToEastern(epoch, unit).Unix()
}

// -----------------------------------------------------------------------------

// DateFormat is the calendar-date layout of the freshness marker.
const DateFormat = "2006-01-02"

// EasternDate returns the Eastern calendar date of an epoch value.
func EasternDate(epoch int64, unit EpochUnit) string {
	return ToEastern(epoch, unit).Format(DateFormat)
}

// -----------------------------------------------------------------------------

// FormatEastern renders an instant as e.g.
// "Friday, Jun 21, 2025, at 08:00PM, ET."
func FormatEastern(t time.Time) string {
	return t.In(Eastern).Format("Monday, Jan 02, 2006, at 03:04PM") + ", ET."
}
