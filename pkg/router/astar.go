package router

import (
	"container/heap"
	"math"
)

// queuedNode is a search-frontier entry: a wire reached via an incoming
// switch, with the accumulated delay, congestion penalty and reuse bonus
// of the path that reached it, the heuristic-to-go, and a random
// tiebreak tag. The same structure doubles as the "visited" record used
// to walk the committed path back to the source once the sink is found.
type queuedNode struct {
	wire    Wire
	pip     Pip
	delay   Delay
	penalty Delay
	bonus   Delay
	togo    Delay
	randtag uint64
}

// key is the value the frontier heap orders by: accumulated cost plus
// heuristic-to-go, net of the reuse bonus.
func (n queuedNode) key() Delay {
	return n.delay + n.penalty + n.togo - n.bonus
}

type nodeHeap []queuedNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	ki, kj := h[i].key(), h[j].key()
	if ki != kj {
		return ki < kj
	}
	return h[i].randtag > h[j].randtag
}
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(queuedNode)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// routeArc runs the per-arc A* search. On success it leaves the
// ArcIndex reflecting a complete source→sink path
// and the Fabric bound accordingly; on failure (ok=false, err=nil) no
// rip-up was performed and the caller treats it as routing-fatal for
// this arc. A non-nil err signals an invariant violation.
func (r *Router) routeArc(arc Arc, allowRipup bool) (ok bool, err error) {
	srcWire, haveSrc := r.fabric.SourceWire(arc.Net)
	dstWire, haveDst := r.fabric.SinkWire(arc.Net, arc.User)
	if !haveSrc || !haveDst {
		return false, nil
	}

	r.ripupFlag = false

	// Detach the arc from whatever it currently occupies; unbind any
	// wire that was exclusively its own.
	for _, w := range r.index.DropArc(arc) {
		r.fabric.UnbindWire(w)
	}

	visited := make(map[Wire]queuedNode)
	var frontier nodeHeap

	startDelay := r.fabric.WireDelay(srcWire).Max
	start := queuedNode{wire: srcWire, pip: PipNone, delay: startDelay}
	bestEst := startDelay
	if r.cfg.UseEstimate {
		start.togo = r.fabric.EstimateDelay(srcWire, dstWire)
		bestEst = start.delay + start.togo
	}
	start.randtag = r.fabric.RNG()
	visited[srcWire] = start
	heap.Push(&frontier, start)

	visitCnt := 0
	maxVisitCnt := math.MaxInt
	foundGoal := false
	var bestScore Delay

	for visitCnt < maxVisitCnt && frontier.Len() > 0 {
		visitCnt++
		qw := heap.Pop(&frontier).(queuedNode)

		for _, pip := range r.fabric.PipsDownhill(qw.wire) {
			nextDelay := qw.delay + r.fabric.PipDelay(pip).Max
			nextPenalty := qw.penalty
			nextBonus := qw.bonus

			nextWire := r.fabric.PipDst(pip)
			nextDelay += r.fabric.WireDelay(nextWire).Max

			netWires := r.fabric.NetWires(arc.Net)
			binding, wireReuse := netWires[nextWire]
			pipReuse := wireReuse && binding.Pip == pip

			var conflictWireWire, conflictPipWire Wire = WireNone, WireNone
			var conflictWireNet, conflictPipNet NetID = NetID(-1), NetID(-1)
			haveConflictWireNet, haveConflictPipNet := false, false

			if !r.fabric.WireAvailable(nextWire) && !wireReuse {
				if !allowRipup {
					continue
				}
				if cw, ok := r.fabric.ConflictingWireForWire(nextWire); ok {
					conflictWireWire = cw
				} else if cn, ok := r.fabric.ConflictingNetForWire(nextWire); ok {
					conflictWireNet = cn
					haveConflictWireNet = true
				} else {
					continue
				}
			}

			if !r.fabric.PipAvailable(pip) && !pipReuse {
				if !allowRipup {
					continue
				}
				if cw, ok := r.fabric.ConflictingWireForPip(pip); ok {
					conflictPipWire = cw
				} else if cn, ok := r.fabric.ConflictingNetForPip(pip); ok {
					conflictPipNet = cn
					haveConflictPipNet = true
				} else {
					continue
				}
			}

			// Deduplicate: a wire-side conflict that belongs to the net
			// the pip-side already flagged (or vice versa) is the same
			// conflict seen twice; suppress one side.
			if haveConflictWireNet && conflictPipWire != WireNone {
				if _, inNet := r.fabric.NetWires(conflictWireNet)[conflictPipWire]; inNet {
					conflictPipWire = WireNone
				}
			}
			if haveConflictPipNet && conflictWireWire != WireNone {
				if _, inNet := r.fabric.NetWires(conflictPipNet)[conflictWireWire]; inNet {
					conflictWireWire = WireNone
				}
			}
			if conflictWireWire == conflictPipWire {
				conflictWireWire = WireNone
			}
			if haveConflictWireNet && haveConflictPipNet && conflictWireNet == conflictPipNet {
				haveConflictWireNet = false
			}

			if wireReuse {
				nextBonus += r.cfg.WireReuseBonus
			}
			if pipReuse {
				nextBonus += r.cfg.PipReuseBonus
			}

			if conflictWireWire != WireNone {
				nextPenalty += r.cfg.WireRipupPenalty * Delay(1+r.scores.Wire(conflictWireWire))
			}
			if conflictPipWire != WireNone {
				nextPenalty += r.cfg.WireRipupPenalty * Delay(1+r.scores.Wire(conflictPipWire))
			}
			if haveConflictWireNet {
				nextPenalty += r.cfg.NetRipupPenalty * Delay(1+r.scores.Net(conflictWireNet))
				nextPenalty += r.cfg.WireRipupPenalty * Delay(len(r.fabric.NetWires(conflictWireNet)))
			}
			if haveConflictPipNet {
				nextPenalty += r.cfg.NetRipupPenalty * Delay(1+r.scores.Net(conflictPipNet))
				nextPenalty += r.cfg.WireRipupPenalty * Delay(len(r.fabric.NetWires(conflictPipNet)))
			}

			nextScore := nextDelay + nextPenalty

			if foundGoal && nextScore-nextBonus-r.cfg.EstimatePrecision > bestScore {
				continue
			}

			if old, ok := visited[nextWire]; ok {
				oldScore := old.delay + old.penalty
				if nextScore+r.cfg.DelayEpsilon >= oldScore {
					continue
				}
			}

			next := queuedNode{
				wire:    nextWire,
				pip:     pip,
				delay:   nextDelay,
				penalty: nextPenalty,
				bonus:   nextBonus,
			}
			if r.cfg.UseEstimate {
				togo := r.fabric.EstimateDelay(nextWire, dstWire)
				thisEst := next.delay + togo
				if thisEst/2-r.cfg.EstimatePrecision > bestEst {
					continue
				}
				if bestEst > thisEst {
					bestEst = thisEst
				}
				next.togo = togo
			}
			next.randtag = r.fabric.RNG()

			visited[nextWire] = next
			heap.Push(&frontier, next)

			if nextWire == dstWire {
				if maxVisitCnt == math.MaxInt {
					maxVisitCnt = 2 * visitCnt
				}
				bestScore = nextScore - nextBonus
				foundGoal = true
			}
		}
	}

	if _, ok := visited[dstWire]; !ok {
		return false, nil
	}

	cursor := dstWire
	for {
		node := visited[cursor]
		pip := node.pip

		netWires := r.fabric.NetWires(arc.Net)
		binding, bound := netWires[cursor]
		if !bound || binding.Pip != pip {
			if !r.fabric.WireAvailable(cursor) {
				if err := r.ripupWire(cursor); err != nil {
					return false, err
				}
				if !r.fabric.WireAvailable(cursor) {
					return false, invariantErrorf("wire %d still unavailable after rip-up", cursor)
				}
			}
			if pip != PipNone && !r.fabric.PipAvailable(pip) {
				if err := r.ripupPip(pip); err != nil {
					return false, err
				}
				if !r.fabric.PipAvailable(pip) {
					return false, invariantErrorf("pip %d still unavailable after rip-up", pip)
				}
			}
			if pip == PipNone {
				r.fabric.BindWire(cursor, arc.Net, StrengthWeak)
			} else {
				r.fabric.BindPip(pip, arc.Net, StrengthWeak)
			}
		}

		r.index.Attach(arc, cursor)

		if pip == PipNone {
			break
		}
		cursor = r.fabric.PipSrc(pip)
	}

	if r.ripupFlag {
		r.arcsWithRipup++
	} else {
		r.arcsWithoutRipup++
	}
	r.metrics.observeArcRouted(r.ripupFlag)

	return true, nil
}
