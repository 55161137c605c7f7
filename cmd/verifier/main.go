package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chainsafe/usdt-payout-verifier/pkg/app"
	"github.com/chainsafe/usdt-payout-verifier/pkg/app/verifier"
	"github.com/chainsafe/usdt-payout-verifier/pkg/config"
)

var (
	configPath = flag.String("config", "config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var runner app.Runner = verifier.NewServer(cfg)
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Verifier stopped with error: %v\n", err)
		os.Exit(1)
	}
}
