// Package network describes the USDT networks the verifier understands:
// their token contracts, decimal scale, address family and API endpoints.
package network

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/chainsafe/usdt-payout-verifier/pkg/config"
)

// Network identifies a USDT deployment by its token standard tag
type Network string

// Supported networks
const (
	TRC20 Network = "TRC20"
	BEP20 Network = "BEP20"
	ERC20 Network = "ERC20"
	ARB20 Network = "ARB20"
)

// Family groups networks that share an address format and RPC shape
type Family int

const (
	FamilyEVM Family = iota
	FamilyTron
)

func (f Family) String() string {
	switch f {
	case FamilyEVM:
		return "evm"
	case FamilyTron:
		return "tron"
	default:
		return "unknown"
	}
}

var (
	// ErrUnsupportedNetwork is returned for network tags outside the supported set
	ErrUnsupportedNetwork = errors.New("unsupported network")
	// ErrDuplicateContract is returned when two networks share a contract address
	ErrDuplicateContract = errors.New("contract address mapped to more than one network")
)

// All returns every supported network in a stable order
func All() []Network {
	return []Network{TRC20, BEP20, ERC20, ARB20}
}

// Parse converts a user supplied tag into a Network
func Parse(s string) (Network, error) {
	n := Network(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := builtin[n]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNetwork, s)
	}
	return n, nil
}

func (n Network) String() string {
	return string(n)
}

// Spec is the static configuration of one network
type Spec struct {
	Network        Network
	Family         Family
	Contract       string // canonical form, see NormalizeAddress
	Decimals       int32
	MinInterval    time.Duration
	Timeout        time.Duration
	Transport      string
	APIURL         string
	APIKey         string
	ChainID        int64
	DepositAddress string // canonical form, empty when not configured
}

var builtin = map[Network]Spec{
	TRC20: {
		Network:  TRC20,
		Family:   FamilyTron,
		Contract: "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t",
		Decimals: 6,
		APIURL:   "https://api.trongrid.io",
	},
	BEP20: {
		Network:  BEP20,
		Family:   FamilyEVM,
		Contract: "0x55d398326f99059fF775485246999027B3197955",
		Decimals: 18,
		APIURL:   "https://api.bscscan.com/api",
	},
	ERC20: {
		Network:  ERC20,
		Family:   FamilyEVM,
		Contract: "0xdAC17F958D2ee523a2206206994597C13D831ec7",
		Decimals: 6,
		APIURL:   "https://api.etherscan.io/api",
	},
	ARB20: {
		Network:  ARB20,
		Family:   FamilyEVM,
		Contract: "0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9",
		Decimals: 6,
		APIURL:   "https://api.arbiscan.io/api",
	},
}

const (
	defaultMinInterval = 200 * time.Millisecond
	defaultTimeout     = 120 * time.Second
)

// Registry holds the resolved per-network table and its reverse contract index
type Registry struct {
	specs      map[Network]Spec
	byContract map[string]Network
}

// NewRegistry merges configuration overrides onto the built-in mainnet table.
// Networks marked disabled are left out of the registry.
func NewRegistry(overrides map[string]config.NetworkConfig) (*Registry, error) {
	r := &Registry{
		specs:      make(map[Network]Spec, len(builtin)),
		byContract: make(map[string]Network, len(builtin)),
	}

	for name := range overrides {
		if _, err := Parse(name); err != nil {
			return nil, err
		}
	}

	for _, n := range All() {
		spec := builtin[n]
		spec.MinInterval = defaultMinInterval
		spec.Timeout = defaultTimeout
		spec.Transport = config.TransportExplorer

		o, overridden := overrides[string(n)]
		if overridden {
			applyOverride(&spec, o)
		}

		contract, err := NormalizeAddress(spec.Family, spec.Contract)
		if err != nil {
			return nil, fmt.Errorf("invalid contract for %s: %w", n, err)
		}
		spec.Contract = contract

		if other, exists := r.byContract[contract]; exists {
			return nil, fmt.Errorf("%w: %s (%s, %s)", ErrDuplicateContract, contract, other, n)
		}
		// Disabled networks stay resolvable so their payments read as wrong_network
		r.byContract[contract] = n
		if overridden && o.Disabled {
			continue
		}

		if spec.DepositAddress != "" {
			deposit, err := NormalizeAddress(spec.Family, spec.DepositAddress)
			if err != nil {
				return nil, fmt.Errorf("invalid deposit address for %s: %w", n, err)
			}
			spec.DepositAddress = deposit
		}

		if spec.Transport == config.TransportJSONRPC && spec.Family != FamilyEVM {
			return nil, fmt.Errorf("network %s does not support the %s transport", n, spec.Transport)
		}

		r.specs[n] = spec
	}

	return r, nil
}

func applyOverride(spec *Spec, o config.NetworkConfig) {
	if o.Contract != "" {
		spec.Contract = o.Contract
	}
	if o.Decimals > 0 {
		spec.Decimals = o.Decimals
	}
	if o.MinInterval > 0 {
		spec.MinInterval = o.MinInterval
	}
	if o.Timeout > 0 {
		spec.Timeout = o.Timeout
	}
	if o.Transport != "" {
		spec.Transport = o.Transport
	}
	if o.APIURL != "" {
		spec.APIURL = o.APIURL
	}
	spec.APIKey = o.APIKey
	spec.ChainID = o.ChainID
	spec.DepositAddress = o.DepositAddress
}

// Spec returns the configuration of n
func (r *Registry) Spec(n Network) (Spec, bool) {
	s, ok := r.specs[n]
	return s, ok
}

// Networks returns the enabled networks in a stable order
func (r *Registry) Networks() []Network {
	out := make([]Network, 0, len(r.specs))
	for n := range r.specs {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NetworkByContract resolves the network whose USDT contract is addr.
// addr may be in any encoding accepted by NormalizeAddress.
func (r *Registry) NetworkByContract(addr string) (Network, bool) {
	for _, f := range []Family{FamilyEVM, FamilyTron} {
		canonical, err := NormalizeAddress(f, addr)
		if err != nil {
			continue
		}
		if n, ok := r.byContract[canonical]; ok {
			return n, true
		}
	}
	return "", false
}

// DepositAddress returns the configured receiving address for n
func (r *Registry) DepositAddress(n Network) (string, error) {
	s, ok := r.specs[n]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedNetwork, n)
	}
	if s.DepositAddress == "" {
		return "", fmt.Errorf("no deposit address configured for %s", n)
	}
	return s.DepositAddress, nil
}
