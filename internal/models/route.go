package models

import "time"

// LegPhase identifies the kind of journey leg a sample falls in
type LegPhase string

// Journey leg phases, in cycle order
const (
	PhaseOutboundShortHaul LegPhase = "outbound_short_haul"
	PhaseStop              LegPhase = "stop"
	PhaseLongHaulOutbound  LegPhase = "long_haul_outbound"
	PhaseRest              LegPhase = "rest"
	PhaseLongHaulReturn    LegPhase = "long_haul_return"
	PhaseInboundShortHaul  LegPhase = "inbound_short_haul"
)

// Traveling reports whether the phase is a moving leg
func (p LegPhase) Traveling() bool {
	switch p {
	case PhaseOutboundShortHaul, PhaseLongHaulOutbound, PhaseLongHaulReturn, PhaseInboundShortHaul:
		return true
	}
	return false
}

// LongHaul reports whether the phase is a refrigerated long-haul leg
func (p LegPhase) LongHaul() bool {
	return p == PhaseLongHaulOutbound || p == PhaseLongHaulReturn
}

// Leg is one scheduled segment of the journey timeline.
// From is inclusive, To exclusive; consecutive legs share their boundary instant.
type Leg struct {
	Phase LegPhase  `json:"phase"`
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
}

// Contains reports whether t falls within the leg's half-open interval
func (l Leg) Contains(t time.Time) bool {
	return !t.Before(l.From) && t.Before(l.To)
}

// Waypoint is a named point on a route
type Waypoint struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RouteSegment is a contiguous run of route points sharing one incident status.
// Adjacent segments share their boundary point so the rendered polyline has no gap.
type RouteSegment struct {
	IsHot  bool       `json:"isHot"`
	Points []Position `json:"points"`
}
