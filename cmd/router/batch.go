package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fabricroute/negroute/internal/fixture"
	"github.com/fabricroute/negroute/internal/parallel"
	"github.com/fabricroute/negroute/pkg/router"
)

var batchConcurrency int

var batchCmd = &cobra.Command{
	Use:   "batch <fixture.yaml>...",
	Short: "Route many independent designs concurrently",
	Long: `batch routes each fixture against its own Fabric, using the adapted
worker pool in internal/parallel to bound how many routing invocations
run at once. The router core itself stays single-threaded per
invocation — batch's concurrency boundary is "one Router and one Fabric
per goroutine," never a shared Fabric.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max concurrent routing invocations (default: number of CPUs)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	pool := parallel.NewPool(batchConcurrency)

	for _, path := range args {
		path := path
		err := pool.Submit(cmd.Context(), path, func(ctx context.Context) (*parallel.Result, error) {
			fab, nets, err := fixture.Load(path)
			if err != nil {
				return nil, err
			}
			cfg := buildRouterConfig(fab)
			log := slog.Default().With(slog.String("fixture", path))
			r := router.NewRouter(fab, nets, cfg, router.WithLogger(log))
			report, err := r.RouteAll()
			if err != nil {
				return nil, err
			}
			return &parallel.Result{Label: path, Value: report}, nil
		})
		if err != nil {
			return fmt.Errorf("submitting %s: %w", path, err)
		}
	}

	results, errs := pool.Drain()
	for _, res := range results {
		report := res.Value.(*router.RunReport)
		fmt.Printf("%s: run %s, %d iterations, %d with rip-up, %d without, checksum %d\n",
			res.Label, report.RunID, report.Iterations, report.ArcsWithRipup, report.ArcsWithoutRipup, report.Checksum)
	}
	for _, err := range errs {
		fmt.Printf("FAILED: %v\n", err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d designs failed to route", len(errs), len(args))
	}
	return nil
}
