package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/fabricroute/negroute/internal/fixture"
	"github.com/fabricroute/negroute/pkg/router"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <fixture.yaml>",
	Short: "Route a design while exposing Prometheus metrics",
	Long: `serve registers the router's arc/rip-up/queue-depth counters and
gauges (pkg/router/metrics.go) with a fresh Prometheus registry, runs the
routing invocation to completion, and then blocks serving /metrics so an
operator (or a scrape job) can inspect the final state.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":9090", "address to serve /metrics on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	fab, nets, err := fixture.Load(args[0])
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := router.NewMetrics(registry)

	cfg := buildRouterConfig(fab)
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: levelFor(cfg.Verbose)}))

	r := router.NewRouter(fab, nets, cfg, router.WithLogger(log), router.WithMetrics(metrics))
	report, routeErr := r.RouteAll()
	if report != nil {
		fmt.Printf("run %s: %d iterations, %d with rip-up, %d without, checksum %d\n",
			report.RunID, report.Iterations, report.ArcsWithRipup, report.ArcsWithoutRipup, report.Checksum)
	}
	if routeErr != nil {
		log.Error("routing failed", slog.Any("err", routeErr))
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	log.Info("serving metrics", slog.String("addr", serveAddr))
	return http.ListenAndServe(serveAddr, mux)
}
