package storage

import (
	"fmt"
	"strings"

	"stock-tracker/src/models"
)

// Info: SQL fragments shared by both backends. The fragments use no
// placeholders, so they are dialect-neutral.

// -----------------------------------------------------------------------------

// barTables maps a timespan to its table name. Also the allow-list
// guarding against table-name injection.
var barTables = map[string]string{
	models.TimespanMinute: "minute_bars",
	models.TimespanHour:   "hour_bars",
	models.TimespanDay:    "day_bars",
}

// BarTableFor resolves the bar table of a timespan.
func BarTableFor(timespan string) (string, error) {
	table, ok := barTables[timespan]
	if !ok {
		return "", fmt.Errorf("unknown timespan %q", timespan)
	}
	return table, nil
}

// -----------------------------------------------------------------------------

// holdingSortOptions is the allow-list of (sort_by, order) pairs of
// the index detail view. Anything else falls back to weight DESC.
var holdingSortOptions = map[[2]string]string{
	{"weight", "asc"}:         "ih.weight ASC",
	{"name", "desc"}:          "s.name DESC",
	{"name", "asc"}:           "s.name ASC",
	{"day_close", "desc"}:     "s.day_close DESC",
	{"day_close", "asc"}:      "s.day_close ASC",
	{"dma_200", "desc"}:       "s.dma_200 DESC",
	{"dma_200", "asc"}:        "s.dma_200 ASC",
	{"todays_change", "desc"}: "s.todays_change_perc DESC",
	{"todays_change", "asc"}:  "s.todays_change_perc ASC",
	{"perc_diff", "desc"}:     "s.dma_200_perc_diff DESC",
	{"perc_diff", "asc"}:      "s.dma_200_perc_diff ASC",
}

func holdingOrderBy(sortBy, order string) string {
	if clause, ok := holdingSortOptions[[2]string{sortBy, order}]; ok {
		return clause
	}
	return "ih.weight DESC"
}

// -----------------------------------------------------------------------------

// Color filter bands over the 200-DMA percent deviation.
var holdingFilterConditions = map[string]string{
	"dark_green": "s.dma_200_perc_diff >= 10",
	"green":      "(s.dma_200_perc_diff >= 2 AND s.dma_200_perc_diff < 10)",
	"yellow":     "(s.dma_200_perc_diff >= -2 AND s.dma_200_perc_diff < 2)",
	"red":        "(s.dma_200_perc_diff >= -10 AND s.dma_200_perc_diff < -2)",
	"dark_red":   "s.dma_200_perc_diff < -10",
}

// holdingFilter builds the WHERE fragment of the color filter.
// Stocks with a NULL deviation are included only when every color is
// selected, so the unfiltered view shows the full membership.
func holdingFilter(filters []string) string {
	valid := make([]string, 0, len(filters))
	for _, f := range filters {
		if _, ok := holdingFilterConditions[f]; ok {
			valid = append(valid, f)
		}
	}
	if len(valid) == 0 {
		for f := range holdingFilterConditions {
			valid = append(valid, f)
		}
	}

	conds := make([]string, 0, len(valid)+1)
	for _, f := range valid {
		conds = append(conds, holdingFilterConditions[f])
	}
	if len(valid) == len(holdingFilterConditions) {
		conds = append(conds, "s.dma_200_perc_diff IS NULL")
	}

	return "(" + strings.Join(conds, " OR ") + ")"
}

// -----------------------------------------------------------------------------

// missingFrom diffs wanted tickers against an existing set.
func missingFrom(existing map[string]bool, tickers []string) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, t := range tickers {
		if !existing[t] && !seen[t] {
			missing = append(missing, t)
			seen[t] = true
		}
	}
	return missing
}
