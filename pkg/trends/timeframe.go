package trends

import "time"

var timeframes = map[string]string{
	"now 1-H":    "now 1-H",
	"now 4-H":    "now 4-H",
	"now 1-d":    "now 1-d",
	"now 7-d":    "now 7-d",
	"today 1-m":  "today 1-m",
	"today 3-m":  "today 3-m",
	"today 12-m": "today 12-m",
	"today 5-y":  "today 5-y",
}

// ConvertTimeframe maps a Google Trends timeframe onto the date range
// accepted by SerpAPI. Unknown values fall back to the last twelve months.
func ConvertTimeframe(timeframe string, now time.Time) string {
	if timeframe == "all" {
		return "2004-01-01 " + now.Format("2006-01-02")
	}
	if v, ok := timeframes[timeframe]; ok {
		return v
	}
	return DefaultTimeframe
}
