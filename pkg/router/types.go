package router

import "fmt"

// Wire identifies a node in the fabric's routing graph. The router never
// interprets the value; it is an opaque handle minted and owned by the
// Fabric.
type Wire int64

// WireNone is the sentinel "no wire" value, mirroring the zero-value
// WireId() idiom of the architecture this router is modeled on.
const WireNone Wire = -1

// Pip identifies a programmable directed edge between two wires (a
// "switch" in spec terms). Opaque, owned by the Fabric.
type Pip int64

// PipNone is the sentinel "no switch" value — used for the source wire
// of a route, which is reached by no incoming switch.
const PipNone Pip = -1

// NetID identifies a logical net. The router keeps its own bookkeeping
// keyed by NetID; the Fabric is the source of truth for what is actually
// bound.
type NetID int64

// Delay is a signed quantity of routing delay, congestion penalty, or
// timing slack. Units are whatever the Fabric uses consistently; the
// router never converts them.
type Delay int64

// DelayRange is the [min, max] delay of traversing a wire or pip. The
// router only ever reads Max.
type DelayRange struct {
	Min Delay
	Max Delay
}

// Strength orders the binding strengths a wire or pip can carry. Setup
// leaves adopted wires at StrengthLocked or above bound even when no arc
// covers them; rip-up evicts bindings regardless of strength. The router
// binds everything it routes at StrengthWeak.
type Strength int

const (
	StrengthNone Strength = iota
	StrengthWeak
	StrengthStrong
	StrengthLocked
	StrengthFixed
)

func (s Strength) String() string {
	switch s {
	case StrengthNone:
		return "none"
	case StrengthWeak:
		return "weak"
	case StrengthStrong:
		return "strong"
	case StrengthLocked:
		return "locked"
	case StrengthFixed:
		return "fixed"
	default:
		return fmt.Sprintf("strength(%d)", int(s))
	}
}

// WireBinding is one entry of a net's pre-existing route, as stored by
// the Fabric: the wire is reached via Pip (PipNone at the net's source)
// at the given Strength.
type WireBinding struct {
	Pip      Pip
	Strength Strength
}

// User is one sink of a Net: a per-sink timing budget (signed delay
// slack) supplied by the caller. A negative Budget means the sink is
// already behind schedule and should be prioritized.
type User struct {
	Budget Delay
}

// Net is a logical signal: one driver, zero or more sinks. Skip marks a
// net the router must ignore entirely — e.g. a net with no driver, or a
// global-only net the caller has decided is out of the router's
// purview. The reason a net is skip-worthy is a caller decision; the
// router never inspects Net for fabric-specific meaning.
type Net struct {
	ID    NetID
	Skip  bool
	Users []User
}

// Arc addresses a single source-to-sink routing problem: the user-idx'th
// sink of Net. An Arc carries no state of its own outside the ArcIndex —
// it is purely a lookup key, and is comparable so it can be used directly
// as a map key.
type Arc struct {
	Net  NetID
	User int
}

func (a Arc) String() string {
	return fmt.Sprintf("arc(net=%d,user=%d)", a.Net, a.User)
}
