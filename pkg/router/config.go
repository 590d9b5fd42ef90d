package router

// RouterConfig holds the router's tunables. Zero-value RouterConfig is
// not meant to be used directly — call NewRouterConfig, which derives
// the penalty/bonus fields from the Fabric's base penalty.
type RouterConfig struct {
	// MaxIterCnt is an upper-bound hint for outer-loop iterations.
	// Honoured by surrounding iteration schedulers, not by the per-arc
	// search itself — the core has no hard ceiling on arcs routed.
	MaxIterCnt int

	// CleanupReroute and FullCleanupReroute are carried in the config
	// (and set by the CLI), but neither Setup nor the A* search reads
	// them: setting either to false changes nothing.
	CleanupReroute     bool
	FullCleanupReroute bool

	// UseEstimate enables the A* heuristic. When false the search
	// degenerates to uniform-cost (Dijkstra).
	UseEstimate bool

	// WireRipupPenalty, NetRipupPenalty, WireReuseBonus, PipReuseBonus
	// and EstimatePrecision are all derived from the Fabric's base
	// penalty unit (Fabric.RipupDelayPenalty) by NewRouterConfig. They
	// are left mutable here for callers who want to tune them directly
	// (e.g. in tests).
	WireRipupPenalty  Delay
	NetRipupPenalty   Delay
	WireReuseBonus    Delay
	PipReuseBonus     Delay
	EstimatePrecision Delay

	// ReportEvery is the iteration modulus at which the outer loop
	// emits a progress line. 1000 is a reasonable default.
	ReportEvery int

	// IntegrityCheckEvery is the iteration modulus at which the outer
	// loop re-validates the ArcIndex invariants. Zero disables it.
	// Defaults to ReportEvery, piggybacking the check on the
	// progress-line cadence rather than running it every iteration.
	IntegrityCheckEvery int

	// Verbose enables one slog.Debug record for each arc the outer loop
	// pops. Binds and rip-ups are not traced.
	Verbose bool

	// DelayEpsilon is the minimum improvement a candidate path to an
	// already-visited wire must show over the recorded best before it
	// replaces it. The Fabric interface has no accessor for this, unlike
	// the other derived constants, so it defaults to zero (strict
	// improvement required) rather than being derived from the base
	// penalty.
	DelayEpsilon Delay
}

// NewRouterConfig returns a RouterConfig with sensible defaults, deriving
// the penalty and bonus fields from fabric's base penalty unit.
func NewRouterConfig(fabric Fabric) RouterConfig {
	base := fabric.RipupDelayPenalty()
	return RouterConfig{
		MaxIterCnt:          200,
		CleanupReroute:      true,
		FullCleanupReroute:  true,
		UseEstimate:         true,
		WireRipupPenalty:    base,
		NetRipupPenalty:     10 * base,
		WireReuseBonus:      base / 8,
		PipReuseBonus:       base / 2,
		EstimatePrecision:   100 * base,
		ReportEvery:         1000,
		IntegrityCheckEvery: 1000,
	}
}
