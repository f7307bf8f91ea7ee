package catalog

import (
	"strconv"
	"strings"
	"time"
)

// plantingLayouts are the date shapes seen in catalog rows, tried in order.
var plantingLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Age is a whole number of completed years since planting.
// Known is false when the planting date is absent or unreadable.
type Age struct {
	Years int  `json:"years"`
	Known bool `json:"known"`
}

// String renders the year count, or the placeholder when unknown.
func (a Age) String() string {
	if !a.Known {
		return Placeholder
	}
	return strconv.Itoa(a.Years)
}

// NotYetPlanted reports a planting date in the future.
func (a Age) NotYetPlanted() bool {
	return a.Known && a.Years < 0
}

// ParsePlantingDate reads a planting date in any of the accepted layouts.
func ParsePlantingDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range plantingLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatAge counts the completed years between the planting date and today.
// The count drops by one until this year's anniversary has passed, so a
// plant put in the ground today is 0 and a future date gives a negative
// count, which is returned as is.
func FormatAge(dateOfPlanting *string, today time.Time) Age {
	if dateOfPlanting == nil {
		return Age{}
	}
	planted, ok := ParsePlantingDate(*dateOfPlanting)
	if !ok {
		return Age{}
	}

	py, pm, pd := planted.Date()
	ty, tm, td := today.Date()

	years := ty - py
	if tm < pm || (tm == pm && td < pd) {
		years--
	}
	return Age{Years: years, Known: true}
}
