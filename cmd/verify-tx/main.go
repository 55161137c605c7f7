// Command verify-tx checks a single USDT payment against an expected amount and
// recipient and prints the verified transfer as JSON.
//
//	verify-tx -config config.yaml -network BEP20 -tx 0x... -amount 20.03234 -to 0x...
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"github.com/chainsafe/usdt-payout-verifier/pkg/app/verifier"
	"github.com/chainsafe/usdt-payout-verifier/pkg/chain/adapters"
	"github.com/chainsafe/usdt-payout-verifier/pkg/config"
	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
	"github.com/chainsafe/usdt-payout-verifier/pkg/ratelimit"
	"github.com/chainsafe/usdt-payout-verifier/pkg/verification"
)

var (
	configPath = flag.String("config", "config.yaml", "Path to configuration file")
	networkTag = flag.String("network", "", "Network tag (TRC20, BEP20, ERC20, ARB20)")
	txID       = flag.String("tx", "", "Transaction hash")
	amount     = flag.String("amount", "", "Expected USDT amount")
	to         = flag.String("to", "", "Expected recipient address; defaults to the configured deposit address")
	noRetry    = flag.Bool("no-retry", false, "Make a single attempt instead of the configured retry schedule")
)

// errNotVerified makes the command exit with status 2
var errNotVerified = errors.New("transaction not verified")

func main() {
	flag.Parse()

	err := run()
	if errors.Is(err, errNotVerified) {
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify-tx: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *networkTag == "" || *txID == "" || *amount == "" {
		flag.Usage()
		return fmt.Errorf("-network, -tx and -amount are required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *noRetry {
		cfg.Verifier.Retry.MaxAttempts = 1
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	expected, err := decimal.NewFromString(*amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", *amount, err)
	}

	n, err := network.Parse(*networkTag)
	if err != nil {
		return err
	}

	registry, err := network.NewRegistry(cfg.Networks)
	if err != nil {
		return fmt.Errorf("build network registry: %w", err)
	}

	recipient := *to
	if recipient == "" {
		if recipient, err = registry.DepositAddress(n); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chainAdapters, closeAdapters, err := adapters.Build(ctx, registry, ratelimit.FromRegistry(registry), logger)
	if err != nil {
		return fmt.Errorf("build network adapters: %w", err)
	}
	defer closeAdapters()

	svc := verifier.NewVerificationService(cfg.Verifier, registry, chainAdapters, logger)
	result, err := svc.VerifyTransactionByHash(ctx, &verification.Request{
		Network:         n,
		TxID:            *txID,
		ExpectedAmount:  expected,
		ExpectedAddress: recipient,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"verified": result != nil, "result": result}); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if result == nil {
		return errNotVerified
	}
	return nil
}
