package router

// setup consumes whatever routing is already present on each non-skip
// net before the outer loop runs: locked wires placed by higher layers
// are adopted rather than re-derived from scratch.
// Nets are processed in the order they were given to NewRouter, so the
// order in which arcs are first enqueued is reproducible. Orphan wires
// are unbound only after every net has passed its checks, so a
// setup-fatal error leaves the Fabric's bindings untouched.
func (r *Router) setup() error {
	srcToNet := make(map[Wire]NetID)
	dstToArc := make(map[Wire]Arc)
	var orphans []Wire

	for _, net := range r.orderedNets {
		if net.Skip {
			continue
		}

		srcWire, ok := r.fabric.SourceWire(net.ID)
		if !ok {
			return setupErrorf("no source wire for net %d", net.ID)
		}
		if other, ok := srcToNet[srcWire]; ok {
			return setupErrorf("wire %d is the source of both net %d and net %d", srcWire, other, net.ID)
		}
		if arc, ok := dstToArc[srcWire]; ok {
			return setupErrorf("wire %d is used as both a source (net %d) and a sink (net %d, user %d)",
				srcWire, net.ID, arc.Net, arc.User)
		}

		for userIdx := range net.Users {
			dstWire, ok := r.fabric.SinkWire(net.ID, userIdx)
			if !ok {
				return setupErrorf("no sink wire for net %d user %d", net.ID, userIdx)
			}

			if existing, ok := dstToArc[dstWire]; ok {
				return setupErrorf("wire %d is the sink of both net %d (user %d) and net %d (user %d)",
					dstWire, net.ID, userIdx, existing.Net, existing.User)
			}
			if other, ok := srcToNet[dstWire]; ok {
				return setupErrorf("wire %d is used as both a sink (net %d, user %d) and a source (net %d)",
					dstWire, net.ID, userIdx, other)
			}

			arc := Arc{Net: net.ID, User: userIdx}
			dstToArc[dstWire] = arc

			bound := r.fabric.NetWires(net.ID)
			if _, ok := bound[srcWire]; !ok {
				r.enqueueArc(arc)
				continue
			}

			cursor := dstWire
			r.index.Attach(arc, cursor)

			for srcWire != cursor {
				binding, ok := bound[cursor]
				if !ok {
					r.enqueueArc(arc)
					break
				}
				cursor = r.fabric.PipSrc(binding.Pip)
				r.index.Attach(arc, cursor)
			}
		}

		srcToNet[srcWire] = net.ID

		bound := r.fabric.NetWires(net.ID)
		for w, binding := range bound {
			if binding.Strength < StrengthLocked && !r.index.HasWire(w) {
				orphans = append(orphans, w)
			}
		}
	}

	for _, w := range orphans {
		r.fabric.UnbindWire(w)
	}
	return nil
}
