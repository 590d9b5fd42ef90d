package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fabricroute/negroute/pkg/router"
)

// bindConfigFlags registers the RouterConfig tunables that are not
// derived from the fabric's base penalty (Verbose, bound in root.go, and
// DelayEpsilon aside) as persistent flags and binds each to viper, so a
// value can come from a flag, an
// environment variable (NEGROUTE_*), or the config file, in that order
// of precedence.
func bindConfigFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.Int("max-iter-cnt", 200, "upper-bound hint for outer iterations")
	flags.Bool("cleanup-reroute", true, "sets RouterConfig.CleanupReroute (not read by the router)")
	flags.Bool("full-cleanup-reroute", true, "sets RouterConfig.FullCleanupReroute (not read by the router)")
	flags.Bool("use-estimate", true, "enable the A* heuristic-to-go")
	flags.Int("report-every", 1000, "iteration modulus for progress lines")
	flags.Int("integrity-check-every", 1000, "iteration modulus for the ArcIndex integrity check (0 disables)")

	for _, name := range []string{
		"max-iter-cnt", "cleanup-reroute", "full-cleanup-reroute",
		"use-estimate", "report-every", "integrity-check-every",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// buildRouterConfig derives the base defaults from fabric's rip-up
// penalty unit and overlays whatever bindConfigFlags resolved from
// flags/env/file.
func buildRouterConfig(fabric router.Fabric) router.RouterConfig {
	cfg := router.NewRouterConfig(fabric)

	cfg.MaxIterCnt = viper.GetInt("max-iter-cnt")
	cfg.CleanupReroute = viper.GetBool("cleanup-reroute")
	cfg.FullCleanupReroute = viper.GetBool("full-cleanup-reroute")
	cfg.UseEstimate = viper.GetBool("use-estimate")
	cfg.ReportEvery = viper.GetInt("report-every")
	cfg.IntegrityCheckEvery = viper.GetInt("integrity-check-every")
	cfg.Verbose = verbose

	return cfg
}
