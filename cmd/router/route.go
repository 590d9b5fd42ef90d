package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fabricroute/negroute/internal/fixture"
	"github.com/fabricroute/negroute/pkg/router"
)

var routeCmd = &cobra.Command{
	Use:   "route <fixture.yaml>",
	Short: "Route a single design against a fabric-sim fixture",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoute,
}

func init() {
	rootCmd.AddCommand(routeCmd)
}

func runRoute(cmd *cobra.Command, args []string) error {
	fab, nets, err := fixture.Load(args[0])
	if err != nil {
		return err
	}

	cfg := buildRouterConfig(fab)
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFor(cfg.Verbose),
	}))

	r := router.NewRouter(fab, nets, cfg, router.WithLogger(log))
	report, err := r.RouteAll()
	if report != nil {
		fmt.Printf("run %s: %d iterations, %d arcs with rip-up, %d without, checksum %d\n",
			report.RunID, report.Iterations, report.ArcsWithRipup, report.ArcsWithoutRipup, report.Checksum)
	}
	return err
}

func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
