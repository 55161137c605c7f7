// Package adapters builds the per-network adapter table from the network registry.
package adapters

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/chainsafe/usdt-payout-verifier/pkg/chain"
	"github.com/chainsafe/usdt-payout-verifier/pkg/chain/evm"
	"github.com/chainsafe/usdt-payout-verifier/pkg/chain/tron"
	"github.com/chainsafe/usdt-payout-verifier/pkg/config"
	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
)

// Build creates one adapter per enabled network. The returned close function
// releases JSON-RPC connections.
func Build(
	ctx context.Context,
	reg *network.Registry,
	limiter chain.Limiter,
	logger *zap.Logger,
) (map[network.Network]chain.Adapter, func(), error) {
	out := make(map[network.Network]chain.Adapter)
	var closers []func()
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	for _, n := range reg.Networks() {
		spec, _ := reg.Spec(n)

		switch spec.Family {
		case network.FamilyTron:
			client := tron.NewClient(spec.APIURL, spec.APIKey, spec.Timeout)
			out[n] = tron.NewAdapter(spec, client, limiter, logger)

		case network.FamilyEVM:
			var source evm.Source
			if spec.Transport == config.TransportJSONRPC {
				client, err := evm.DialRPC(ctx, spec.APIURL)
				if err != nil {
					closeAll()
					return nil, nil, fmt.Errorf("network %s: %w", n, err)
				}
				closers = append(closers, client.Close)
				source = client
			} else {
				source = evm.NewExplorerClient(spec.APIURL, spec.APIKey, spec.ChainID, spec.Timeout)
			}
			out[n] = evm.NewAdapter(spec, source, limiter, logger)

		default:
			closeAll()
			return nil, nil, fmt.Errorf("network %s: unsupported family %s", n, spec.Family)
		}

		logger.Info("network adapter ready",
			zap.String("network", n.String()),
			zap.String("family", spec.Family.String()),
			zap.String("transport", spec.Transport),
			zap.String("contract", spec.Contract),
			zap.Int32("decimals", spec.Decimals))
	}

	return out, closeAll, nil
}
