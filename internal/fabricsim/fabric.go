// Package fabricsim is an in-memory stand-in for the architecture
// database pkg/router treats as an external collaborator (its Fabric
// interface). It exists purely for tests and, through internal/fixture,
// the cmd/router subcommands — the router core never imports it, the same way a real
// architecture database implementation would keep its own native
// encoding private from the router.
//
// A fabricsim.Fabric is built once with a Builder and then driven through
// router.Fabric exactly as any real architecture database would be.
package fabricsim

import (
	"hash/fnv"
	"math/rand"
	"sort"
	"sync"

	"github.com/fabricroute/negroute/pkg/router"
)

type wireInfo struct {
	delay router.DelayRange
}

type pipInfo struct {
	src, dst Wire
	delay    router.DelayRange
}

// Wire and Pip alias the router package's opaque identifiers so callers
// building a fixture never need to import router directly for ID types.
type Wire = router.Wire
type Pip = router.Pip

type binding struct {
	net      router.NetID
	strength router.Strength
	viaPip   Pip
}

// Fabric is a complete router.Fabric implementation over an explicit,
// in-memory routing graph. Safe for one routing invocation at a time;
// Lock/Unlock is a real sync.Mutex, the coarse lock/unlock pair the
// router takes for the duration of a run.
type Fabric struct {
	mu sync.Mutex

	wires    map[Wire]wireInfo
	pips     map[Pip]pipInfo
	downhill map[Wire][]Pip

	sources map[router.NetID]Wire
	sinks   map[router.NetID]map[int]Wire
	netMap  map[router.NetID]map[Wire]router.WireBinding

	bound map[Wire]binding

	rng         *rand.Rand
	basePenalty router.Delay

	estCache map[Wire]map[Wire]router.Delay
}

// Builder accumulates wires and pips before producing an immutable
// Fabric. Wire and Pip identifiers are assigned in the order they are
// added, starting at 0 — a dense integer-arena idiom: small integer
// identifiers and flat maps instead of per-node heap objects.
type Builder struct {
	f *Fabric
}

// NewBuilder starts an empty fabric graph.
func NewBuilder() *Builder {
	return &Builder{f: &Fabric{
		wires:    make(map[Wire]wireInfo),
		pips:     make(map[Pip]pipInfo),
		downhill: make(map[Wire][]Pip),
		sources:  make(map[router.NetID]Wire),
		sinks:    make(map[router.NetID]map[int]Wire),
		netMap:   make(map[router.NetID]map[Wire]router.WireBinding),
		bound:    make(map[Wire]binding),
		estCache: make(map[Wire]map[Wire]router.Delay),
	}}
}

// AddWire allocates a new wire with the given delay range and returns its
// identifier.
func (b *Builder) AddWire(delay router.DelayRange) Wire {
	id := Wire(len(b.f.wires))
	b.f.wires[id] = wireInfo{delay: delay}
	return id
}

// AddPip allocates a new directed switch from src to dst with the given
// delay range and returns its identifier.
func (b *Builder) AddPip(src, dst Wire, delay router.DelayRange) Pip {
	id := Pip(len(b.f.pips))
	b.f.pips[id] = pipInfo{src: src, dst: dst, delay: delay}
	b.f.downhill[src] = append(b.f.downhill[src], id)
	return id
}

// SetSource records w as net's driver wire.
func (b *Builder) SetSource(net router.NetID, w Wire) {
	b.f.sources[net] = w
}

// SetSink records w as net's userIdx-th sink wire.
func (b *Builder) SetSink(net router.NetID, userIdx int, w Wire) {
	if b.f.sinks[net] == nil {
		b.f.sinks[net] = make(map[int]Wire)
	}
	b.f.sinks[net][userIdx] = w
}

// SeedBinding pre-populates net's stored route with a wire reached via
// pip at strength, and marks that wire occupied in the live binding
// table — the state Setup expects to find already present for a net
// carrying a pre-existing (e.g. locked) route. Pass router.PipNone for
// the source wire itself.
func (b *Builder) SeedBinding(net router.NetID, w Wire, pip Pip, strength router.Strength) {
	if b.f.netMap[net] == nil {
		b.f.netMap[net] = make(map[Wire]router.WireBinding)
	}
	b.f.netMap[net][w] = router.WireBinding{Pip: pip, Strength: strength}
	b.f.bound[w] = binding{net: net, strength: strength, viaPip: pip}
}

// Build finalizes the fabric. seed drives the deterministic PRNG the
// router's A* tie-break reads from, so that given the same seed and the
// same input the router produces the same route; basePenalty is the
// value RipupDelayPenalty reports.
func (b *Builder) Build(seed int64, basePenalty router.Delay) *Fabric {
	b.f.rng = rand.New(rand.NewSource(seed))
	b.f.basePenalty = basePenalty
	return b.f
}

func (f *Fabric) Lock()   { f.mu.Lock() }
func (f *Fabric) Unlock() { f.mu.Unlock() }

func (f *Fabric) SourceWire(net router.NetID) (Wire, bool) {
	w, ok := f.sources[net]
	return w, ok
}

func (f *Fabric) SinkWire(net router.NetID, user int) (Wire, bool) {
	w, ok := f.sinks[net][user]
	return w, ok
}

func (f *Fabric) NetWires(net router.NetID) map[Wire]router.WireBinding {
	src := f.netMap[net]
	out := make(map[Wire]router.WireBinding, len(src))
	for w, b := range src {
		out[w] = b
	}
	return out
}

func (f *Fabric) PipsDownhill(w Wire) []Pip {
	return append([]Pip(nil), f.downhill[w]...)
}

func (f *Fabric) PipSrc(p Pip) Wire { return f.pips[p].src }
func (f *Fabric) PipDst(p Pip) Wire { return f.pips[p].dst }

func (f *Fabric) WireDelay(w Wire) router.DelayRange { return f.wires[w].delay }
func (f *Fabric) PipDelay(p Pip) router.DelayRange   { return f.pips[p].delay }

// EstimateDelay runs an on-demand, memoized breadth/cost search over the
// static graph (ignoring current availability, since the admissible-ish
// heuristic only needs a reasonable lower bound, not a live one) and
// caches the result per source wire.
func (f *Fabric) EstimateDelay(src, dst Wire) router.Delay {
	if src == dst {
		return 0
	}
	byDst, ok := f.estCache[src]
	if !ok {
		byDst = f.computeDistances(src)
		f.estCache[src] = byDst
	}
	d, ok := byDst[dst]
	if !ok {
		// Unreachable in the static graph; a large but finite value
		// keeps arithmetic well-defined without special-casing infinity.
		return router.Delay(1 << 30)
	}
	return d
}

func (f *Fabric) computeDistances(src Wire) map[Wire]router.Delay {
	dist := map[Wire]router.Delay{src: f.wires[src].delay.Max}
	queue := []Wire{src}
	for len(queue) > 0 {
		w := queue[0]
		queue = queue[1:]
		for _, p := range f.downhill[w] {
			next := f.pips[p].dst
			cand := dist[w] + f.pips[p].delay.Max + f.wires[next].delay.Max
			if cur, ok := dist[next]; !ok || cand < cur {
				dist[next] = cand
				queue = append(queue, next)
			}
		}
	}
	return dist
}

func (f *Fabric) WireAvailable(w Wire) bool {
	_, ok := f.bound[w]
	return !ok
}

func (f *Fabric) PipAvailable(p Pip) bool {
	return f.WireAvailable(f.pips[p].dst)
}

// ConflictingWireForWire never resolves in this simulator: it models no
// below-wire-level shared resources (e.g. a BEL pin shared by two pips),
// only whole-net occupancy. See DESIGN.md.
func (f *Fabric) ConflictingWireForWire(w Wire) (Wire, bool) { return router.WireNone, false }

func (f *Fabric) ConflictingNetForWire(w Wire) (router.NetID, bool) {
	b, ok := f.bound[w]
	if !ok {
		return 0, false
	}
	return b.net, true
}

func (f *Fabric) ConflictingWireForPip(p Pip) (Wire, bool) { return router.WireNone, false }

func (f *Fabric) ConflictingNetForPip(p Pip) (router.NetID, bool) {
	return f.ConflictingNetForWire(f.pips[p].dst)
}

// BindWire and BindPip record the binding both in the flat ownership
// table (used by WireAvailable/PipAvailable/Conflicting*) and in the
// owning net's own route map (NetWires) — the latter is what the A*
// search's reuse detection and the commit walk's "already bound via
// this switch" check read, so the two must never drift apart.
func (f *Fabric) BindWire(w Wire, net router.NetID, strength router.Strength) {
	f.setBinding(w, net, router.PipNone, strength)
}

func (f *Fabric) BindPip(p Pip, net router.NetID, strength router.Strength) {
	f.setBinding(f.pips[p].dst, net, p, strength)
}

func (f *Fabric) setBinding(w Wire, net router.NetID, pip Pip, strength router.Strength) {
	if old, ok := f.bound[w]; ok && old.net != net {
		delete(f.netMap[old.net], w)
	}
	f.bound[w] = binding{net: net, strength: strength, viaPip: pip}
	if f.netMap[net] == nil {
		f.netMap[net] = make(map[Wire]router.WireBinding)
	}
	f.netMap[net][w] = router.WireBinding{Pip: pip, Strength: strength}
}

func (f *Fabric) UnbindWire(w Wire) {
	if old, ok := f.bound[w]; ok {
		delete(f.netMap[old.net], w)
	}
	delete(f.bound, w)
}

func (f *Fabric) RNG() uint64 { return f.rng.Uint64() }

// Checksum hashes the sorted set of currently-bound (wire, net, pip)
// triples. Deterministic for a given binding state; two fabrics with
// identical bindings produce identical checksums regardless of the
// order bindings were made in.
func (f *Fabric) Checksum() uint64 {
	wires := make([]Wire, 0, len(f.bound))
	for w := range f.bound {
		wires = append(wires, w)
	}
	sort.Slice(wires, func(i, j int) bool { return wires[i] < wires[j] })

	h := fnv.New64a()
	for _, w := range wires {
		b := f.bound[w]
		var buf [24]byte
		putInt64(buf[0:8], int64(w))
		putInt64(buf[8:16], int64(b.net))
		putInt64(buf[16:24], int64(b.viaPip))
		h.Write(buf[:])
	}
	return h.Sum64()
}

func putInt64(buf []byte, v int64) {
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
}

func (f *Fabric) RipupDelayPenalty() router.Delay { return f.basePenalty }

// ActualRouteDelay is unimplemented: it always reports failure rather
// than guessing at a real path-delay computation.
func (f *Fabric) ActualRouteDelay(src, dst Wire, useEstimate bool) (router.Delay, map[Wire]Pip, bool) {
	return 0, nil, false
}
