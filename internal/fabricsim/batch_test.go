package fabricsim_test

import (
	"context"
	"testing"

	"github.com/fabricroute/negroute/internal/fabricsim"
	"github.com/fabricroute/negroute/internal/parallel"
	"github.com/fabricroute/negroute/pkg/router"
)

func mkd(d router.Delay) router.DelayRange { return router.DelayRange{Min: d, Max: d} }

// buildTrivialFabric returns a fresh one-source/one-sink fabric, isolated
// from every other call — the point of this test is that several such
// fabrics can be routed concurrently without sharing any state, since
// each gets its own Fabric and hence its own lock.
func buildTrivialFabric(seed int64) (*fabricsim.Fabric, []*router.Net) {
	b := fabricsim.NewBuilder()
	src := b.AddWire(mkd(0))
	dst := b.AddWire(mkd(0))
	b.AddPip(src, dst, mkd(5))
	b.SetSource(1, src)
	b.SetSink(1, 0, dst)
	fab := b.Build(seed, 100)
	net := &router.Net{ID: 1, Users: []router.User{{Budget: 0}}}
	return fab, []*router.Net{net}
}

// TestBatchPoolRoutesIndependentFabricsConcurrently exercises the adapted
// worker pool (internal/parallel) the way cmd/router's batch subcommand
// does: several independent Router/Fabric pairs, each routed to
// completion on its own goroutine, collected through Pool.Drain.
func TestBatchPoolRoutesIndependentFabricsConcurrently(t *testing.T) {
	const n = 8
	pool := parallel.NewPool(4)

	for i := 0; i < n; i++ {
		seed := int64(i + 1)
		label := "fixture"
		err := pool.Submit(context.Background(), label, func(ctx context.Context) (*parallel.Result, error) {
			fab, nets := buildTrivialFabric(seed)
			r := router.NewRouter(fab, nets, router.NewRouterConfig(fab))
			report, err := r.RouteAll()
			if err != nil {
				return nil, err
			}
			return &parallel.Result{Label: label, Value: report}, nil
		})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	results, errs := pool.Drain()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(results) != n {
		t.Fatalf("got %d results, want %d", len(results), n)
	}
	for _, res := range results {
		report := res.Value.(*router.RunReport)
		if !report.ValidationPassed {
			t.Errorf("fixture %s failed validation", res.Label)
		}
	}
}
