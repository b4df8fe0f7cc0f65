package navigation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rbeaumont/questtrail/pkg/geo"
)

// State is the session lifecycle state. Error is a sub-state, not a
// terminal one: a session with a sensor error keeps accepting updates and
// manual check-ins.
type State string

const (
	StateInitializing State = "initializing"
	StateTracking     State = "tracking"
	StateArrived      State = "arrived"
)

// Snapshot is a point-in-time view of a session for callers and wire
// responses.
type Snapshot struct {
	ID             uuid.UUID   `json:"id"`
	State          State       `json:"state"`
	Destination    Destination `json:"destination"`
	Position       *Position   `json:"position,omitempty"`
	DistanceMeters *float64    `json:"distance_meters,omitempty"`
	BearingDegrees *float64    `json:"bearing_degrees,omitempty"`
	Cardinal       string      `json:"cardinal,omitempty"`
	Arrow          string      `json:"arrow,omitempty"`
	Distance       string      `json:"distance,omitempty"`
	Encouragement  string      `json:"encouragement,omitempty"`
	LastError      string      `json:"last_error,omitempty"`
	Arrived        bool        `json:"arrived"`
}

// Session tracks one journey toward a destination. Arrival is one-shot
// and terminal: after it fires, further position updates have no effect.
type Session struct {
	id     uuid.UUID
	dest   Destination
	logger *slog.Logger

	mu       sync.Mutex
	state    State
	position *Position
	distance *float64
	bearing  *float64
	lastErr  error
	stopped  bool

	release func()

	arriveOnce sync.Once
	arrived    chan struct{}
}

// NewSession creates a session in the Initializing state.
func NewSession(dest Destination, logger *slog.Logger) *Session {
	return &Session{
		id:      uuid.New(),
		dest:    dest,
		logger:  logger,
		state:   StateInitializing,
		arrived: make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Arrived is closed exactly once, when the session reaches the
// destination or the player checks in manually.
func (s *Session) Arrived() <-chan struct{} {
	return s.arrived
}

// Start requests location access from the source and, on grant, begins
// consuming continuous updates. Permission denial is recorded as an error
// state and is not fatal: the session stays open for manual check-in.
func (s *Session) Start(ctx context.Context, src Source) {
	pos, err := src.Current(ctx)
	if err != nil {
		s.RecordError(err)
		s.logger.Warn("Location permission denied, manual check-in still available",
			"session_id", s.id, "error", err)
		return
	}

	s.BeginTracking()
	s.HandleUpdate(pos)

	updates, release, err := src.Watch(ctx)
	if err != nil {
		s.RecordError(err)
		return
	}

	s.mu.Lock()
	if s.stopped || s.state == StateArrived {
		// Arrived or stopped between the first fix and the subscription.
		s.mu.Unlock()
		release()
		return
	}
	s.release = release
	s.mu.Unlock()

	go func() {
		for u := range updates {
			if u.Err != nil {
				s.RecordError(u.Err)
				continue
			}
			s.HandleUpdate(u.Position)
		}
	}()
}

// BeginTracking transitions Initializing -> Tracking. Used directly when
// position updates are fed by the caller instead of a Source.
func (s *Session) BeginTracking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInitializing {
		s.state = StateTracking
	}
}

// HandleUpdate processes one position fix: recomputes distance and
// bearing and fires the arrival transition when within the radius.
// Updates delivered after arrival or Stop are ignored.
func (s *Session) HandleUpdate(pos Position) {
	s.mu.Lock()
	if s.stopped || s.state == StateArrived {
		s.mu.Unlock()
		return
	}
	if s.state == StateInitializing {
		s.state = StateTracking
	}

	dist := geo.Distance(pos.Lat, pos.Lng, s.dest.Lat, s.dest.Lng)
	bearing := geo.Bearing(pos.Lat, pos.Lng, s.dest.Lat, s.dest.Lng)

	p := pos
	s.position = &p
	s.distance = &dist
	s.bearing = &bearing
	s.lastErr = nil

	within := dist <= s.dest.Radius()
	s.mu.Unlock()

	if within {
		s.arrive("within arrival radius")
	}
}

// RecordError notes a sensor error without terminating tracking.
func (s *Session) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.state == StateArrived {
		return
	}
	s.lastErr = err
}

// ManualCheckIn forces the arrival transition regardless of distance.
// Idempotent, usable from any non-terminal state.
func (s *Session) ManualCheckIn() {
	s.arrive("manual check-in")
}

func (s *Session) arrive(reason string) {
	s.arriveOnce.Do(func() {
		s.mu.Lock()
		if s.stopped {
			// Discarded sessions do not arrive.
			s.mu.Unlock()
			return
		}
		s.state = StateArrived
		release := s.release
		s.release = nil
		s.mu.Unlock()

		if release != nil {
			release()
		}
		close(s.arrived)
		s.logger.Info("Arrived at destination", "session_id", s.id, "reason", reason)
	})
}

// Stop releases the location subscription. Safe to call more than once
// and on every exit path; the session accepts no further updates after.
func (s *Session) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	release := s.release
	s.release = nil
	s.mu.Unlock()

	if release != nil {
		release()
	}
	s.logger.Debug("Navigation session stopped", "session_id", s.id)
}

// Snapshot returns the current session view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:          s.id,
		State:       s.state,
		Destination: s.dest,
		Position:    s.position,
		Arrived:     s.state == StateArrived,
	}
	if s.lastErr != nil {
		snap.LastError = s.lastErr.Error()
	}
	if s.distance != nil {
		d := *s.distance
		snap.DistanceMeters = &d
		snap.Distance = geo.FormatDistance(d)
		snap.Encouragement = geo.Encouragement(d)
	}
	if s.bearing != nil {
		b := *s.bearing
		snap.BearingDegrees = &b
		snap.Cardinal = geo.Cardinal(b)
		snap.Arrow = geo.Arrow(b)
	}
	return snap
}
