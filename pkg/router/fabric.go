package router

// Fabric is the architecture oracle the router treats as an external
// collaborator: a read-mostly view of the routing graph plus the
// mutating primitives needed to bind and unbind resources. The router
// never knows how a concrete Fabric encodes wires or switches — it only
// ever holds the identifiers Fabric hands back.
//
// Implementations must be safe to call from a single goroutine at a
// time per routing invocation; Lock/Unlock is how the router claims
// exclusive access for the duration of a run, since the Fabric may be
// shared with other subsystems (placement, timing) between runs.
type Fabric interface {
	// Lock claims exclusive access to the fabric for the duration of a
	// routing invocation. Unlock releases it. The router takes this
	// lock for the entire run, never per-operation.
	Lock()
	Unlock()

	// SourceWire resolves a net's driver to a routing wire. ok is false
	// if the net has no resolvable source (a setup-fatal condition).
	SourceWire(net NetID) (w Wire, ok bool)

	// SinkWire resolves the user-th sink of net to a routing wire. ok is
	// false if it cannot be resolved.
	SinkWire(net NetID, user int) (w Wire, ok bool)

	// NetWires returns the net's currently-recorded routing: for every
	// wire already claimed by the net, the switch that drives it
	// (PipNone at the source) and the strength it was bound at. Setup
	// walks this map backward from each sink toward the source to adopt
	// pre-existing routes.
	NetWires(net NetID) map[Wire]WireBinding

	// PipsDownhill lists the outgoing switches from w.
	PipsDownhill(w Wire) []Pip

	// PipSrc and PipDst are the two endpoints of a switch.
	PipSrc(p Pip) Wire
	PipDst(p Pip) Wire

	// WireDelay and PipDelay report the delay range of traversing a
	// wire or switch. The router only ever reads .Max.
	WireDelay(w Wire) DelayRange
	PipDelay(p Pip) DelayRange

	// EstimateDelay is an admissible-ish heuristic from src to dst. It
	// need not be a strict lower bound — the A* search's pruning
	// tolerates slack via RouterConfig.EstimatePrecision.
	EstimateDelay(src, dst Wire) Delay

	// WireAvailable and PipAvailable report whether a resource is free
	// to bind. A resource already bound to the net currently searching
	// reports unavailable too; callers detect that case via reuse
	// (NetWires), not availability.
	WireAvailable(w Wire) bool
	PipAvailable(p Pip) bool

	// ConflictingWireForWire and ConflictingNetForWire resolve what is
	// currently holding a wire that is not available: either a specific
	// other wire (when the conflict is a shared resource below the wire
	// level) or the whole net holding it. The "specific wire" form
	// preempts the "whole net" form: callers check it first. Both ok
	// results are false when the wire is simply available.
	ConflictingWireForWire(w Wire) (conflict Wire, ok bool)
	ConflictingNetForWire(w Wire) (conflict NetID, ok bool)

	// ConflictingWireForPip and ConflictingNetForPip are the pip-side
	// analogues.
	ConflictingWireForPip(p Pip) (conflict Wire, ok bool)
	ConflictingNetForPip(p Pip) (conflict NetID, ok bool)

	// BindWire and BindPip claim a resource for net at the given
	// strength. UnbindWire releases a wire unconditionally (switches
	// have no independent binding state in this model — they ride along
	// with the wire they feed).
	BindWire(w Wire, net NetID, strength Strength)
	BindPip(p Pip, net NetID, strength Strength)
	UnbindWire(w Wire)

	// RNG returns the next value from a deterministic PRNG. The A*
	// search uses it purely to tie-break an otherwise-tied heap order;
	// reseed through the Fabric, never from the system clock, or two
	// runs over the same design will diverge.
	RNG() uint64

	// Checksum is an opaque whole-design fingerprint, reported once
	// routing completes.
	Checksum() uint64

	// RipupDelayPenalty is the base penalty unit RouterConfig derives
	// wireRipupPenalty, netRipupPenalty, the reuse bonuses and
	// estimatePrecision from.
	RipupDelayPenalty() Delay

	// ActualRouteDelay is a placeholder for extracting the "actual"
	// delay and path of an already-routed src→dst pair, independent of
	// the heuristic estimate. Whether any caller needs it is an open
	// question; implementations should return ok=false rather than
	// guess at a real one.
	ActualRouteDelay(src, dst Wire, useEstimate bool) (delay Delay, path map[Wire]Pip, ok bool)
}
