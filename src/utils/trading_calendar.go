package utils

import (
	"log"
	"strings"
	"time"

	"github.com/scmhub/calendar"
)

// Suffix-to-MIC mapping for tickers carrying an exchange suffix
// (ISO 10383 MIC codes, see scmhub/calendar for the supported set).
var suffixToMIC = map[string]string{
	".L":  "xlon",
	".PA": "xpar",
	".DE": "xfra",
	".AS": "xams",
	".BR": "xbru",
	".MI": "xmil",
	".MC": "xmad",
	".ST": "xsto",
	".CO": "xcse",
	".HE": "xhel",
	".VI": "xwbo",
	".SW": "xswx",
	".TO": "xtse",
	".V":  "xtsx",
	".T":  "xtks",
	".HK": "xhkg",
	".AX": "xasx",
	".KS": "xkrx",
	".TW": "xtai",
	".SS": "xshg",
	".SZ": "xshe",
}

// TradingCalendar answers trading-day questions for a ticker's exchange.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// -----------------------------------------------------------------------------

func GetCalendar(ticker string) *TradingCalendar {
	mic := "xnys" // Default US NYSE
	for suffix, code := range suffixToMIC {
		if strings.HasSuffix(ticker, suffix) {
			mic = code
			break
		}
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}

	if cal == nil {
		log.Printf("WARNING: Failed to load calendar for MIC '%s' and fallback 'xnys'. Using simple fallback (Mon-Fri).", mic)
		nyLoc, _ := time.LoadLocation("America/New_York")
		if nyLoc == nil {
			nyLoc = time.UTC
		}
		return &TradingCalendar{Fallback: true, Timezone: nyLoc}
	}

	return &TradingCalendar{Calendar: cal, Fallback: false, Timezone: cal.Loc}
}

// -----------------------------------------------------------------------------

func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// TradingDaysBetween counts trading days in the inclusive unix-seconds
// window [start, end], iterating calendar days in the exchange timezone.
func (tc *TradingCalendar) TradingDaysBetween(start, end int64) int {
	if start > end {
		return 0
	}

	loc := tc.Timezone
	if loc == nil {
		loc = time.UTC
	}

	day := time.Unix(start, 0).In(loc)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	last := time.Unix(end, 0).In(loc)

	count := 0
	for !day.After(last) {
		if tc.IsTradingDay(day) {
			count++
		}
		day = day.AddDate(0, 0, 1)
	}
	return count
}
