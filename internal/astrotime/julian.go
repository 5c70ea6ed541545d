// Package astrotime converts civil UTC dates to Julian dates and mean
// sidereal time, using the Meeus formulation.
package astrotime

import (
	"math"
	"time"
)

const (
	// J2000 is the Julian date of 2000-01-01 12:00 UTC.
	J2000 = 2451545.0

	daysPerCentury = 36525.0

	// Gregorian calendar corrections apply to years after this one.
	gregorianSwitchYear = 1582
)

// JulianDate returns the Julian date for a calendar date. day may carry a
// fractional part for the time of day. Years before 1 follow astronomical
// numbering (year 0 is 1 BC). Results are valid back to 4713 BC.
func JulianDate(year, month int, day float64) float64 {
	y, m := float64(year), float64(month)
	if month <= 2 {
		y--
		m += 12
	}

	b := 0.0
	if y > gregorianSwitchYear {
		a := math.Trunc(y / 100)
		b = 2 - a + math.Trunc(a/4)
	}

	return math.Trunc(365.25*(y+4716)) + math.Trunc(30.6001*(m+1)) + day + b - 1524.5
}

// JulianDateOf returns the Julian date of t, taken in UTC.
func JulianDateOf(t time.Time) float64 {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	frac := t.Sub(midnight).Hours() / 24
	return JulianDate(t.Year(), int(t.Month()), float64(t.Day())+frac)
}

// JulianCenturies is the number of Julian centuries since J2000.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / daysPerCentury
}
