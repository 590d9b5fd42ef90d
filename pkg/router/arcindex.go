package router

// ArcIndex maintains the mutual inverse between wires and the arcs that
// currently route through them. The wire↔arc relation is exactly the
// kind of bidirectional bookkeeping that is easy to get subtly wrong, so
// every mutation is funneled through attach/detach here — nothing else
// in the package touches the two maps directly.
//
// Invariant, true after every public method returns:
//
//	a ∈ wireToArcs[w]  ⇔  w ∈ arcToWires[a]
type ArcIndex struct {
	wireToArcs map[Wire]map[Arc]struct{}
	arcToWires map[Arc]map[Wire]struct{}
}

// NewArcIndex returns an empty index.
func NewArcIndex() *ArcIndex {
	return &ArcIndex{
		wireToArcs: make(map[Wire]map[Arc]struct{}),
		arcToWires: make(map[Arc]map[Wire]struct{}),
	}
}

// Attach records that arc now occupies wire.
func (ix *ArcIndex) Attach(arc Arc, w Wire) {
	arcs, ok := ix.wireToArcs[w]
	if !ok {
		arcs = make(map[Arc]struct{})
		ix.wireToArcs[w] = arcs
	}
	arcs[arc] = struct{}{}

	wires, ok := ix.arcToWires[arc]
	if !ok {
		wires = make(map[Wire]struct{})
		ix.arcToWires[arc] = wires
	}
	wires[w] = struct{}{}
}

// Detach undoes one Attach. It reports whether w has no remaining
// occupant arcs afterward — the caller's cue to unbind w in the Fabric,
// since ArcIndex never calls the Fabric itself.
func (ix *ArcIndex) Detach(arc Arc, w Wire) (emptied bool) {
	if arcs, ok := ix.wireToArcs[w]; ok {
		delete(arcs, arc)
		if len(arcs) == 0 {
			delete(ix.wireToArcs, w)
			emptied = true
		}
	}
	if wires, ok := ix.arcToWires[arc]; ok {
		delete(wires, w)
		if len(wires) == 0 {
			delete(ix.arcToWires, arc)
		}
	}
	return emptied
}

// DropArc detaches arc from every wire it occupies and returns the set
// of wires that were emptied as a result (and so need unbinding).
func (ix *ArcIndex) DropArc(arc Arc) []Wire {
	wires := ix.arcToWires[arc]
	if len(wires) == 0 {
		return nil
	}
	// Snapshot before mutating: Detach deletes from this same map.
	snapshot := make([]Wire, 0, len(wires))
	for w := range wires {
		snapshot = append(snapshot, w)
	}
	var emptied []Wire
	for _, w := range snapshot {
		if ix.Detach(arc, w) {
			emptied = append(emptied, w)
		}
	}
	return emptied
}

// WiresOf returns the wires currently occupied by arc. The returned
// slice is a fresh copy; callers may mutate it freely.
func (ix *ArcIndex) WiresOf(arc Arc) []Wire {
	wires := ix.arcToWires[arc]
	if len(wires) == 0 {
		return nil
	}
	out := make([]Wire, 0, len(wires))
	for w := range wires {
		out = append(out, w)
	}
	return out
}

// ArcsOf returns the arcs currently occupying w. The returned slice is a
// fresh copy.
func (ix *ArcIndex) ArcsOf(w Wire) []Arc {
	arcs := ix.wireToArcs[w]
	if len(arcs) == 0 {
		return nil
	}
	out := make([]Arc, 0, len(arcs))
	for a := range arcs {
		out = append(out, a)
	}
	return out
}

// HasWire reports whether w has any occupant arcs at all.
func (ix *ArcIndex) HasWire(w Wire) bool {
	return len(ix.wireToArcs[w]) > 0
}

// NetOf reports the net every arc occupying w belongs to, if w is
// occupied and all its occupants agree (which they always should, since
// two nets never legally share a wire). ok is false if w is unoccupied.
func (ix *ArcIndex) NetOf(w Wire) (net NetID, ok bool) {
	arcs := ix.wireToArcs[w]
	for a := range arcs {
		return a.Net, true
	}
	return 0, false
}

// Wires returns every wire currently tracked by the index, for
// integrity checks.
func (ix *ArcIndex) Wires() []Wire {
	out := make([]Wire, 0, len(ix.wireToArcs))
	for w := range ix.wireToArcs {
		out = append(out, w)
	}
	return out
}

// Arcs returns every arc currently tracked by the index.
func (ix *ArcIndex) Arcs() []Arc {
	out := make([]Arc, 0, len(ix.arcToWires))
	for a := range ix.arcToWires {
		out = append(out, a)
	}
	return out
}
