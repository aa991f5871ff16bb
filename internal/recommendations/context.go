package recommendations

import (
	"strings"
	"time"
)

// cityZones maps location substrings to USDA hardiness zones. Order matters:
// the first match wins, so more specific names go before broader ones. This is
// a coarse lookup table, not a geocoder; unmatched locations use defaultZone.
var cityZones = []struct {
	city string
	zone string
}{
	{"denver", "5b"},
	{"colorado", "5b"},
	{"seattle", "8b"},
	{"portland", "8b"},
	{"boston", "6b"},
	{"new york", "7a"},
	{"chicago", "6a"},
	{"atlanta", "8a"},
	{"miami", "10b"},
	{"los angeles", "10a"},
	{"phoenix", "9b"},
	{"austin", "8b"},
	{"dallas", "8a"},
}

const defaultZone = "6b"

// HardinessZone derives a zone code from a free-form location string.
func HardinessZone(location string) string {
	lower := strings.ToLower(location)
	for _, entry := range cityZones {
		if strings.Contains(lower, entry.city) {
			return entry.zone
		}
	}
	return defaultZone
}

// Season maps the calendar month to a planting-season label.
func Season(t time.Time) string {
	switch t.Month() {
	case time.March, time.April, time.May:
		return "Spring Planting Season"
	case time.June, time.July, time.August:
		return "Summer Growing Season"
	case time.September, time.October, time.November:
		return "Fall Planting Season"
	default:
		return "Winter Planning Season"
	}
}

// sunExposure maps a compass direction to a qualitative sun level.
var sunExposure = map[string]string{
	"N":  "shade",
	"NE": "partial shade",
	"NW": "partial shade",
	"E":  "partial sun",
	"W":  "partial sun",
	"SE": "partial sun",
	"SW": "partial sun",
	"S":  "full sun",
}

// SunLevel derives the sun exposure for a yard direction. Unrecognized
// directions fall back to partial sun rather than erroring.
func SunLevel(direction string) string {
	if level, ok := sunExposure[strings.ToUpper(strings.TrimSpace(direction))]; ok {
		return level
	}
	return "partial sun"
}
