// Package navigation runs live tracking sessions that guide a player
// toward a destination coordinate and detect arrival.
package navigation

import "context"

// DefaultArrivalRadiusMeters is the arrival threshold used when a
// destination does not set its own. Wide enough to absorb consumer GPS
// drift while still meaning "standing at the spot".
const DefaultArrivalRadiusMeters = 25.0

// Destination is the coordinate a session tracks toward.
type Destination struct {
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	ArrivalRadius  float64 `json:"arrival_radius,omitempty"`
	ArrivalMessage string  `json:"arrival_message,omitempty"`
}

// Radius returns the arrival radius, falling back to the default.
func (d Destination) Radius() float64 {
	if d.ArrivalRadius > 0 {
		return d.ArrivalRadius
	}
	return DefaultArrivalRadiusMeters
}

// Position is a sensed location fix.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Update is one delivery from a location source: a fix or an error.
type Update struct {
	Position Position
	Err      error
}

// Source is the location-sensing collaborator. Current performs the
// one-shot permission request and first fix; Watch subscribes to
// continuous updates and returns the release func for the subscription.
type Source interface {
	Current(ctx context.Context) (Position, error)
	Watch(ctx context.Context) (<-chan Update, func(), error)
}
