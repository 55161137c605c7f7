// Package calldata decodes token transfer calls from transaction input data.
package calldata

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"

	"github.com/chainsafe/usdt-payout-verifier/pkg/network"
)

const transferABI = `[{"type":"function","name":"transfer","stateMutability":"nonpayable",
"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],
"outputs":[{"name":"","type":"bool"}]}]`

var (
	// ErrNotTransfer is returned when input does not call transfer(address,uint256)
	ErrNotTransfer = errors.New("input is not a token transfer call")
	// ErrMalformedInput is returned when the transfer arguments cannot be unpacked
	ErrMalformedInput = errors.New("malformed transfer call data")
)

var transferMethod abi.Method

// TransferSelector is the 4 byte method id of transfer(address,uint256), 0xa9059cbb
var TransferSelector []byte

func init() {
	parsed, err := abi.JSON(strings.NewReader(transferABI))
	if err != nil {
		panic(fmt.Sprintf("calldata: parse transfer ABI: %v", err))
	}
	transferMethod = parsed.Methods["transfer"]
	TransferSelector = transferMethod.ID
}

// DecodedTransfer is a token transfer extracted from call data
type DecodedTransfer struct {
	Recipient string          // canonical address in the network's family form
	RawAmount *big.Int        // amount in the token's smallest unit
	Amount    decimal.Decimal // RawAmount scaled by the network's decimals
}

// Decode parses input as transfer(address,uint256) and scales the amount using
// spec.Decimals. It never returns a partial result.
func Decode(input []byte, spec network.Spec) (*DecodedTransfer, error) {
	if len(input) < len(TransferSelector) || !bytes.Equal(input[:len(TransferSelector)], TransferSelector) {
		return nil, ErrNotTransfer
	}

	args, err := transferMethod.Inputs.Unpack(input[len(TransferSelector):])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: expected 2 arguments, got %d", ErrMalformedInput, len(args))
	}

	to, ok := args[0].(common.Address)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected recipient type %T", ErrMalformedInput, args[0])
	}
	value, ok := args[1].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected amount type %T", ErrMalformedInput, args[1])
	}

	recipient, err := network.AddressFromBytes(spec.Family, to.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	return &DecodedTransfer{
		Recipient: recipient,
		RawAmount: new(big.Int).Set(value),
		Amount:    ScaleAmount(value, spec.Decimals),
	}, nil
}

// ScaleAmount converts a raw token amount into whole token units
func ScaleAmount(raw *big.Int, decimals int32) decimal.Decimal {
	return decimal.NewFromBigInt(raw, -decimals)
}

// ParseHexInput decodes hex call data with or without a 0x prefix
func ParseHexInput(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return b, nil
}

// EncodeTransfer builds transfer(address,uint256) call data. The recipient is
// given as a 20 byte account.
func EncodeTransfer(to common.Address, amount *big.Int) ([]byte, error) {
	args, err := transferMethod.Inputs.Pack(to, amount)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, TransferSelector...), args...), nil
}
