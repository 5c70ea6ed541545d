package astrotime

import (
	"fmt"
	"math"
	"time"
)

const (
	degreesPerHour = 15.0
	siderealDay    = 24 * time.Hour
)

// GreenwichMeanSiderealJD returns Greenwich mean sidereal time in degrees,
// normalised to [0, 360), for a Julian date.
func GreenwichMeanSiderealJD(jd float64) float64 {
	t := JulianCenturies(jd)
	deg := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*t*t -
		t*t*t/38710000.0
	return NormalizeDegrees(deg)
}

// GreenwichMeanSidereal returns GMST in degrees at t.
func GreenwichMeanSidereal(t time.Time) float64 {
	return GreenwichMeanSiderealJD(JulianDateOf(t))
}

// LocalMeanSidereal returns local mean sidereal time in degrees at t for an
// observer at longitude lon (degrees, east positive).
func LocalMeanSidereal(t time.Time, lon float64) float64 {
	return NormalizeDegrees(GreenwichMeanSidereal(t) + lon)
}

// NormalizeDegrees wraps deg into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// DegreesToDuration converts an hour angle in degrees to a time of day on
// the sidereal clock.
func DegreesToDuration(deg float64) time.Duration {
	hours := NormalizeDegrees(deg) / degreesPerHour
	d := time.Duration(math.Round(hours * float64(time.Hour)))
	if d >= siderealDay {
		d -= siderealDay
	}
	return d
}

// DurationToDegrees is the inverse of DegreesToDuration.
func DurationToDegrees(d time.Duration) float64 {
	return NormalizeDegrees(d.Hours() * degreesPerHour)
}

// FormatHMS renders a sidereal time of day as hh:mm:ss.ssss.
func FormatHMS(d time.Duration) string {
	d = d % siderealDay
	if d < 0 {
		d += siderealDay
	}
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%02d:%02d:%07.4f", int(h), int(m), d.Seconds())
}
