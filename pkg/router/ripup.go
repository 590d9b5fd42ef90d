package router

import "sort"

// evictWire detaches every arc currently occupying w, re-enqueues each
// of them in (net, user) order, unbinds w in the Fabric, and bumps w's
// score. It is the one piece of eviction logic shared by ripupNet's
// per-wire sweep and the wire-side branches of ripupWire/ripupPip.
func (r *Router) evictWire(w Wire) {
	arcs := r.index.ArcsOf(w)
	sort.Slice(arcs, func(i, j int) bool {
		if arcs[i].Net != arcs[j].Net {
			return arcs[i].Net < arcs[j].Net
		}
		return arcs[i].User < arcs[j].User
	})
	for _, arc := range arcs {
		r.index.Detach(arc, w)
		r.enqueueArc(arc)
	}
	r.fabric.UnbindWire(w)
	r.scores.BumpWire(w)
	r.metrics.observeRipup()
}

// ripupNet evicts every wire currently bound to net, in ascending wire
// order, bumping net's score once and every evicted wire's score as it
// goes. Every disturbed
// arc is pushed back onto the work queue at the same priority formula
// Setup uses — not an incremented one.
func (r *Router) ripupNet(net NetID) error {
	r.scores.BumpNet(net)

	bound := r.fabric.NetWires(net)
	wires := make([]Wire, 0, len(bound))
	for w := range bound {
		wires = append(wires, w)
	}
	sort.Slice(wires, func(i, j int) bool { return wires[i] < wires[j] })
	for _, w := range wires {
		r.evictWire(w)
	}

	r.ripupFlag = true
	return nil
}

// ripupWire asks the Fabric what currently conflicts at w: a specific
// wire preempts a whole net. If neither is reported, w was already
// free and there is nothing to evict.
func (r *Router) ripupWire(w Wire) error {
	if conflict, ok := r.fabric.ConflictingWireForWire(w); ok {
		r.evictWire(conflict)
	} else if net, ok := r.fabric.ConflictingNetForWire(w); ok {
		if err := r.ripupNet(net); err != nil {
			return err
		}
	}
	r.ripupFlag = true
	return nil
}

// ripupPip is the switch-side analogue of ripupWire.
func (r *Router) ripupPip(p Pip) error {
	if conflict, ok := r.fabric.ConflictingWireForPip(p); ok {
		r.evictWire(conflict)
	} else if net, ok := r.fabric.ConflictingNetForPip(p); ok {
		if err := r.ripupNet(net); err != nil {
			return err
		}
	}
	r.ripupFlag = true
	return nil
}

// enqueueArc computes arc's priority the same way Setup does
// (estimateDelay(source, sink) − budget) and pushes it onto the work
// queue if it is not already pending.
func (r *Router) enqueueArc(arc Arc) {
	net := r.nets[arc.Net]
	if net == nil || net.Skip || arc.User < 0 || arc.User >= len(net.Users) {
		return
	}
	src, ok := r.fabric.SourceWire(arc.Net)
	if !ok {
		return
	}
	dst, ok := r.fabric.SinkWire(arc.Net, arc.User)
	if !ok {
		return
	}
	priority := r.fabric.EstimateDelay(src, dst) - net.Users[arc.User].Budget
	r.queue.Insert(arc, priority)
}
