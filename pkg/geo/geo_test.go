package geo

import (
	"math"
	"testing"
)

func TestDistance_KnownPoints(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
		tolerance              float64
	}{
		{
			name: "same point",
			lat1: 52.5200, lon1: 13.4050,
			lat2: 52.5200, lon2: 13.4050,
			expected:  0,
			tolerance: 0,
		},
		{
			name: "Paris to London",
			lat1: 48.8566, lon1: 2.3522,
			lat2: 51.5074, lon2: -0.1278,
			expected:  343550,
			tolerance: 1000,
		},
		{
			name: "short hop within a city block",
			lat1: 40.7484, lon1: -73.9857,
			lat2: 40.7493, lon2: -73.9857,
			expected:  100,
			tolerance: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("Distance() = %v, expected %v ± %v", got, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestDistance_Symmetric(t *testing.T) {
	points := [][4]float64{
		{48.8566, 2.3522, 51.5074, -0.1278},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{0, 0, 0, 180},
		{89.9, 0, -89.9, 0},
	}

	for _, p := range points {
		ab := Distance(p[0], p[1], p[2], p[3])
		ba := Distance(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1 {
			t.Errorf("Distance not symmetric: A->B %v, B->A %v", ab, ba)
		}
	}
}

func TestBearing_Range(t *testing.T) {
	points := [][4]float64{
		{48.8566, 2.3522, 51.5074, -0.1278},
		{0, 0, 1, 0},   // due north
		{0, 0, 0, 1},   // due east
		{1, 0, 0, 0},   // due south
		{0, 1, 0, 0},   // due west
		{0, 0, -1, -1}, // southwest-ish
	}

	for _, p := range points {
		b := Bearing(p[0], p[1], p[2], p[3])
		if b < 0 || b >= 360 {
			t.Errorf("Bearing(%v) = %v, expected [0, 360)", p, b)
		}
	}
}

func TestBearing_CardinalPoints(t *testing.T) {
	tests := []struct {
		name     string
		lat2     float64
		lon2     float64
		expected float64
	}{
		{"due north", 1, 0, 0},
		{"due east", 0, 1, 90},
		{"due south", -1, 0, 180},
		{"due west", 0, -1, 270},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(0, 0, tt.lat2, tt.lon2)
			if math.Abs(got-tt.expected) > 0.01 {
				t.Errorf("Bearing() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestCardinal(t *testing.T) {
	tests := []struct {
		bearing  float64
		expected string
	}{
		{0, "North"},
		{22.4, "North"},
		{22.5, "Northeast"},
		{45, "Northeast"},
		{90, "East"},
		{135, "Southeast"},
		{180, "South"},
		{225, "Southwest"},
		{270, "West"},
		{315, "Northwest"},
		{337.4, "Northwest"},
		{337.5, "North"},
		{359.9, "North"},
	}

	for _, tt := range tests {
		if got := Cardinal(tt.bearing); got != tt.expected {
			t.Errorf("Cardinal(%v) = %q, expected %q", tt.bearing, got, tt.expected)
		}
	}
}

// Cardinal and Arrow must partition the circle identically.
func TestCardinalArrowAgree(t *testing.T) {
	arrowFor := map[string]string{
		"North":     "⬆️",
		"Northeast": "↗️",
		"East":      "➡️",
		"Southeast": "↘️",
		"South":     "⬇️",
		"Southwest": "↙️",
		"West":      "⬅️",
		"Northwest": "↖️",
	}

	for b := 0.0; b < 360; b += 0.5 {
		card := Cardinal(b)
		if got := Arrow(b); got != arrowFor[card] {
			t.Fatalf("Arrow(%v) = %q disagrees with Cardinal(%v) = %q", b, got, b, card)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters   float64
		expected string
	}{
		{0, "0m"},
		{42, "42m"},
		{999, "999m"},
		{1000, "1.0km"},
		{1500, "1.5km"},
		{10000, "10.0km"},
		{12345, "12.3km"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.expected {
			t.Errorf("FormatDistance(%v) = %q, expected %q", tt.meters, got, tt.expected)
		}
	}
}

func TestEncouragement_Bands(t *testing.T) {
	tests := []struct {
		meters   float64
		expected string
	}{
		{0, "You're here! Look around... 🎊"},
		{25, "You're here! Look around... 🎊"},
		{26, "So close! Almost there! 🎉"},
		{50, "So close! Almost there! 🎉"},
		{100, "Just around the corner! 💕"},
		{200, "Getting warmer... Keep going! ✨"},
		{500, "You're doing great! 🚶‍♀️"},
		{501, "Off you go! Adventure awaits! 💖"},
		{10000, "Off you go! Adventure awaits! 💖"},
	}

	for _, tt := range tests {
		if got := Encouragement(tt.meters); got != tt.expected {
			t.Errorf("Encouragement(%v) = %q, expected %q", tt.meters, got, tt.expected)
		}
	}
}
