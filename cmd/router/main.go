// Command router is the cobra/viper front end for the negotiated
// congestion router core in pkg/router. It is a thin shell: each routing
// subcommand (route, batch, serve) loads a fixture design through
// internal/fixture, builds a router.Router, and reports the outcome. The algorithmic core never
// imports this package or its dependencies.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
