package router

import (
	"errors"
	"testing"

	"github.com/fabricroute/negroute/internal/fabricsim"
)

func mkd(d Delay) DelayRange { return DelayRange{Min: d, Max: d} }

// TestRouteAllTrivial routes the simplest possible design: one source
// wire, one switch, one sink wire, one net, one user. The queue should
// drain in a single iteration with no rip-ups and a passing validator.
func TestRouteAllTrivial(t *testing.T) {
	b := fabricsim.NewBuilder()
	s := b.AddWire(mkd(0))
	dst := b.AddWire(mkd(0))
	b.AddPip(s, dst, mkd(5))
	b.SetSource(1, s)
	b.SetSink(1, 0, dst)
	fab := b.Build(1, 100)

	net := &Net{ID: 1, Users: []User{{Budget: 0}}}
	r := NewRouter(fab, []*Net{net}, NewRouterConfig(fab))

	report, err := r.RouteAll()
	if err != nil {
		t.Fatalf("RouteAll failed: %v", err)
	}
	if report.ArcsWithRipup != 0 {
		t.Errorf("expected no rip-ups, got %d", report.ArcsWithRipup)
	}
	if report.ArcsWithoutRipup != 1 {
		t.Errorf("expected exactly one arc routed cleanly, got %d", report.ArcsWithoutRipup)
	}
	if !report.ValidationPassed {
		t.Error("expected the post-route validator to pass")
	}
}

// TestRouteAllForcedRipup is end-to-end scenario 2: two nets each have a
// cheap path through a shared bottleneck wire and a costlier private
// alternative. The first net to commit claims the bottleneck for free;
// the second is forced to rip it up; re-routing the evicted net crosses
// back and evicts the other in turn; only once a net's conflict carries
// a bumped score does the penalty exceed the alternative's extra cost,
// at which point the loop settles with both nets routed.
func TestRouteAllForcedRipup(t *testing.T) {
	b := fabricsim.NewBuilder()

	s1 := b.AddWire(mkd(0))
	s2 := b.AddWire(mkd(0))
	bottleneck := b.AddWire(mkd(0))
	t1 := b.AddWire(mkd(0))
	t2 := b.AddWire(mkd(0))
	alt1 := b.AddWire(mkd(0))
	alt2 := b.AddWire(mkd(0))

	b.AddPip(s1, bottleneck, mkd(0))
	b.AddPip(bottleneck, t1, mkd(0))
	b.AddPip(s1, alt1, mkd(900))
	b.AddPip(alt1, t1, mkd(900))

	b.AddPip(s2, bottleneck, mkd(0))
	b.AddPip(bottleneck, t2, mkd(0))
	b.AddPip(s2, alt2, mkd(900))
	b.AddPip(alt2, t2, mkd(900))

	b.SetSource(1, s1)
	b.SetSink(1, 0, t1)
	b.SetSource(2, s2)
	b.SetSink(2, 0, t2)

	fab := b.Build(1, 100)

	netA := &Net{ID: 1, Users: []User{{Budget: 0}}}
	netB := &Net{ID: 2, Users: []User{{Budget: 0}}}
	r := NewRouter(fab, []*Net{netA, netB}, NewRouterConfig(fab))

	report, err := r.RouteAll()
	if err != nil {
		t.Fatalf("RouteAll failed: %v", err)
	}
	if !report.ValidationPassed {
		t.Fatal("expected the post-route validator to pass")
	}
	if report.ArcsWithRipup != 2 {
		t.Errorf("arcsWithRipup = %d, want 2", report.ArcsWithRipup)
	}
	if report.ArcsWithoutRipup != 2 {
		t.Errorf("arcsWithoutRipup = %d, want 2", report.ArcsWithoutRipup)
	}
	if got := r.scores.Net(1); got != 1 {
		t.Errorf("score_book.net[1] = %d, want 1", got)
	}
	if got := r.scores.Net(2); got != 1 {
		t.Errorf("score_book.net[2] = %d, want 1", got)
	}

	// Exactly one net should have settled on the bottleneck, the other
	// on its private alternative — never both on the bottleneck, and
	// never neither (the graph guarantees someone must hold it).
	onBottleneck := 0
	for _, netID := range []NetID{1, 2} {
		wires := fab.NetWires(netID)
		if _, ok := wires[bottleneck]; ok {
			onBottleneck++
		}
	}
	if onBottleneck != 1 {
		t.Errorf("expected exactly one net on the bottleneck wire, got %d", onBottleneck)
	}
}

// TestBudgetOrderingPopsTighterSlackFirst is end-to-end scenario 4: two
// identically-shaped arcs, one with a tighter (more negative) timing
// budget. Setup's priority formula (estimateDelay − budget) must give
// the tight-slack arc the larger priority, so it pops first.
func TestBudgetOrderingPopsTighterSlackFirst(t *testing.T) {
	b := fabricsim.NewBuilder()

	loose := &Net{ID: 1, Users: []User{{Budget: 50}}}
	tight := &Net{ID: 2, Users: []User{{Budget: -50}}}

	for _, net := range []*Net{loose, tight} {
		s := b.AddWire(mkd(0))
		dst := b.AddWire(mkd(0))
		b.AddPip(s, dst, mkd(10))
		b.SetSource(net.ID, s)
		b.SetSink(net.ID, 0, dst)
	}
	fab := b.Build(1, 100)

	r := NewRouter(fab, []*Net{loose, tight}, NewRouterConfig(fab))
	if err := r.setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	first, ok := r.queue.Pop()
	if !ok {
		t.Fatal("expected a queued arc")
	}
	if first.Net != tight.ID {
		t.Errorf("first popped arc belongs to net %d, want the tight-budget net %d", first.Net, tight.ID)
	}
}

// panickyFabric wraps a Fabric and panics from SourceWire instead of
// answering, standing in for a collaborator (the Fabric, or a logging
// sink) raising an unwinding fault mid-run.
type panickyFabric struct {
	*fabricsim.Fabric
}

func (panickyFabric) SourceWire(net NetID) (Wire, bool) {
	panic("collaborator fault")
}

// TestRouteAllRecoversFromPanic checks that a panic raised by a
// collaborator does not escape RouteAll. It is caught, the fabric
// lock is released, and the caller gets back a normal
// (*RunReport, error) pair wrapping ErrHostSignalled.
func TestRouteAllRecoversFromPanic(t *testing.T) {
	b := fabricsim.NewBuilder()
	s := b.AddWire(mkd(0))
	dst := b.AddWire(mkd(0))
	b.AddPip(s, dst, mkd(5))
	b.SetSource(1, s)
	b.SetSink(1, 0, dst)
	fab := b.Build(1, 100)

	net := &Net{ID: 1, Users: []User{{Budget: 0}}}
	pf := panickyFabric{fab}
	r := NewRouter(pf, []*Net{net}, NewRouterConfig(pf))

	report, err := r.RouteAll()
	if err == nil {
		t.Fatal("expected RouteAll to return an error after a collaborator panic")
	}
	if !errors.Is(err, ErrHostSignalled) {
		t.Errorf("err = %v, want ErrHostSignalled", err)
	}
	if report == nil {
		t.Fatal("expected a non-nil report even on a recovered panic")
	}

	// The fabric lock must have been released by the deferred Unlock
	// despite the panic, not left held.
	fab.Lock()
	fab.Unlock()
}
