package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "router",
	Short: "Negotiated congestion detailed router",
	Long: `router embeds logical nets into a fabric's routing graph using a
negotiated rip-up-and-reroute A* search. Each subcommand loads a fixture
file describing a fabric graph and the nets to route over it.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.negroute.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging, with one record per arc routed (binds and rip-ups are not traced)")

	bindConfigFlags(rootCmd)
}

// initConfig layers viper's file/env config under whatever flags the
// operator passed on the command line — cobra flags always win.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".negroute")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("NEGROUTE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			slog.Warn("failed to read config file", slog.Any("err", err))
		}
	}
}
