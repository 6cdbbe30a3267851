package model

// Zone is the performance band a connections total falls into. It is a
// display classification only and is never persisted.
type Zone string

// Performance zones, ordered worst to best.
const (
	ZoneRed        Zone = "red"
	ZoneYellow     Zone = "yellow"
	ZoneOrange     Zone = "orange"
	ZoneLightGreen Zone = "light_green"
	ZoneDarkGreen  Zone = "dark_green"
)

// ZoneFor classifies a monthly connections total into its zone. Boundaries
// are inclusive: 5 and 10 are yellow, 15 is orange, 20 is light green.
func ZoneFor(connections int64) Zone {
	switch {
	case connections < 5:
		return ZoneRed
	case connections <= 10:
		return ZoneYellow
	case connections <= 15:
		return ZoneOrange
	case connections <= 20:
		return ZoneLightGreen
	default:
		return ZoneDarkGreen
	}
}
