package router

import (
	"testing"

	"github.com/fabricroute/negroute/internal/fabricsim"
)

// TestValidateUnboundSource covers a net whose true source was never
// committed, but whose sole bound wire carries a stray parent pointer
// that happens to resolve back to that source. It must fail validation
// rather than walk and pass cleanly.
func TestValidateUnboundSource(t *testing.T) {
	b := fabricsim.NewBuilder()
	src := b.AddWire(mkd(0))
	sink := b.AddWire(mkd(0))
	p := b.AddPip(src, sink, mkd(0))
	b.SetSource(1, src)
	b.SetSink(1, 0, sink)

	// src is never seeded into the net's binding map; only sink is,
	// claiming to be reached via p from src.
	b.SeedBinding(1, sink, p, StrengthWeak)
	fab := b.Build(1, 100)

	net := &Net{ID: 1, Users: []User{{Budget: 0}}}
	report, err := Validate(fab, []*Net{net})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if report.Valid {
		t.Fatal("expected validation to fail on an unbound source")
	}
	if !hasFailureReason(report, "source not bound to net") {
		t.Errorf("failures = %v, want one reason \"source not bound to net\"", report.Failures)
	}
}

// TestValidateCycle builds a net where the source's own recorded
// parent is a wire it drives itself: src's binding resolves back to
// a, and a's binding resolves back to src. Since each wire carries
// exactly one recorded parent, a cycle can only ever be reached from
// the source by looping through the source's own binding this way —
// an isolated cycle among non-source wires is never visited at all
// and shows up as dangling instead (see TestValidateDanglingWire).
func TestValidateCycle(t *testing.T) {
	b := fabricsim.NewBuilder()
	src := b.AddWire(mkd(0))
	a := b.AddWire(mkd(0))
	sink := b.AddWire(mkd(0))

	srcToA := b.AddPip(src, a, mkd(0))
	aToSrc := b.AddPip(a, src, mkd(0))
	_ = b.AddPip(src, sink, mkd(0))

	b.SetSource(1, src)
	b.SetSink(1, 0, sink)

	b.SeedBinding(1, src, aToSrc, StrengthWeak)
	b.SeedBinding(1, a, srcToA, StrengthWeak)

	fab := b.Build(1, 100)

	net := &Net{ID: 1, Users: []User{{Budget: 0}}}
	report, err := Validate(fab, []*Net{net})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if report.Valid {
		t.Fatal("expected validation to fail on a cycle")
	}
	if !hasFailureReason(report, "cycle detected in switch graph") {
		t.Errorf("failures = %v, want a cycle failure", report.Failures)
	}
}

// TestValidateStub builds a net where a bound wire has no further
// children and is not a sink: a dead branch off the routed tree.
func TestValidateStub(t *testing.T) {
	b := fabricsim.NewBuilder()
	src := b.AddWire(mkd(0))
	sink := b.AddWire(mkd(0))
	stub := b.AddWire(mkd(0))

	toSink := b.AddPip(src, sink, mkd(0))
	toStub := b.AddPip(src, stub, mkd(0))

	b.SetSource(1, src)
	b.SetSink(1, 0, sink)

	b.SeedBinding(1, src, PipNone, StrengthWeak)
	b.SeedBinding(1, sink, toSink, StrengthWeak)
	b.SeedBinding(1, stub, toStub, StrengthWeak)

	fab := b.Build(1, 100)

	net := &Net{ID: 1, Users: []User{{Budget: 0}}}
	report, err := Validate(fab, []*Net{net})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if report.Valid {
		t.Fatal("expected validation to fail on a stub")
	}
	if !hasFailureReason(report, "stub at a non-sink leaf") {
		t.Errorf("failures = %v, want a stub failure", report.Failures)
	}
}

// TestValidateDanglingWire builds a net where a wire is bound but
// entirely disconnected from the source-rooted tree: a fragment left
// over from an incomplete rip-up.
func TestValidateDanglingWire(t *testing.T) {
	b := fabricsim.NewBuilder()
	src := b.AddWire(mkd(0))
	sink := b.AddWire(mkd(0))
	orphanA := b.AddWire(mkd(0))
	orphanB := b.AddWire(mkd(0))

	toSink := b.AddPip(src, sink, mkd(0))
	orphanPip := b.AddPip(orphanA, orphanB, mkd(0))

	b.SetSource(1, src)
	b.SetSink(1, 0, sink)

	b.SeedBinding(1, src, PipNone, StrengthWeak)
	b.SeedBinding(1, sink, toSink, StrengthWeak)
	// orphanA carries no binding of its own (PipNone would make it
	// look like a second source), so only the downstream half of the
	// disconnected fragment is recorded as bound.
	b.SeedBinding(1, orphanB, orphanPip, StrengthWeak)

	fab := b.Build(1, 100)

	net := &Net{ID: 1, Users: []User{{Budget: 0}}}
	report, err := Validate(fab, []*Net{net})
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if report.Valid {
		t.Fatal("expected validation to fail on a dangling wire")
	}
	if !hasFailureReason(report, "dangling wire bound but not reached from source") {
		t.Errorf("failures = %v, want a dangling-wire failure", report.Failures)
	}
}

func hasFailureReason(report *ValidationReport, reason string) bool {
	for _, f := range report.Failures {
		if f.Reason == reason {
			return true
		}
	}
	return false
}
