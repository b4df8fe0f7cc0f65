// Package geo provides the pure math used by navigation: great-circle
// distance, compass bearing, and the display helpers derived from them.
package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean sphere radius used by Distance.
const EarthRadiusMeters = 6371000.0

// Distance returns the haversine great-circle distance between two
// coordinates, rounded to the nearest meter.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(EarthRadiusMeters * c)
}

// Bearing returns the initial compass bearing from point 1 to point 2,
// in degrees clockwise from north, normalized to [0, 360).
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) -
		math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)

	theta := math.Atan2(y, x)
	return math.Mod(theta*180/math.Pi+360, 360)
}

// Compass sector names and arrows share one eight-way partition of the
// circle, with sector boundaries at 22.5 + 45k degrees. sector() is the
// single source of truth so Cardinal and Arrow can never disagree.
var (
	cardinals = [8]string{"North", "Northeast", "East", "Southeast", "South", "Southwest", "West", "Northwest"}
	arrows    = [8]string{"⬆️", "↗️", "➡️", "↘️", "⬇️", "↙️", "⬅️", "↖️"}
)

func sector(bearing float64) int {
	b := math.Mod(math.Mod(bearing, 360)+360, 360)
	return int(math.Floor((b+22.5)/45)) % 8
}

// Cardinal converts a bearing to one of the eight compass direction names.
func Cardinal(bearing float64) string {
	return cardinals[sector(bearing)]
}

// Arrow converts a bearing to a directional glyph for display.
func Arrow(bearing float64) string {
	return arrows[sector(bearing)]
}

// FormatDistance renders a distance as integer meters below 1 km,
// otherwise as kilometers with one decimal place.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}

// Encouragement bands, nearest first. The first threshold the distance
// satisfies wins.
var encouragementBands = []struct {
	maxMeters float64
	message   string
}{
	{25, "You're here! Look around... 🎊"},
	{50, "So close! Almost there! 🎉"},
	{100, "Just around the corner! 💕"},
	{200, "Getting warmer... Keep going! ✨"},
	{500, "You're doing great! 🚶‍♀️"},
}

const encouragementFar = "Off you go! Adventure awaits! 💖"

// Encouragement maps a remaining distance to a proximity message.
func Encouragement(meters float64) string {
	for _, band := range encouragementBands {
		if meters <= band.maxMeters {
			return band.message
		}
	}
	return encouragementFar
}
