package network

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

// tronPrefix is the version byte of TRON mainnet addresses
const tronPrefix byte = 0x41

// ErrInvalidAddress is returned when an address cannot be parsed for its family
var ErrInvalidAddress = errors.New("invalid address")

// NormalizeAddress converts addr into the canonical form of family:
//   - EVM: "0x" followed by 40 lowercase hex characters
//   - TRON: "41" followed by 40 lowercase hex characters
//
// TRON accepts the base58check "T..." form, the "41..." hex form and a bare
// 20 byte "0x..." hex form. Normalizing a canonical address returns it unchanged.
func NormalizeAddress(family Family, addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	switch family {
	case FamilyEVM:
		return normalizeEVM(addr)
	case FamilyTron:
		return normalizeTron(addr)
	default:
		return "", fmt.Errorf("%w: unknown address family %d", ErrInvalidAddress, family)
	}
}

// AddressFromBytes renders a raw 20 byte account in the canonical form of family
func AddressFromBytes(family Family, b []byte) (string, error) {
	if len(b) != common.AddressLength {
		return "", fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAddress, common.AddressLength, len(b))
	}
	if family == FamilyTron {
		return hex.EncodeToString(append([]byte{tronPrefix}, b...)), nil
	}
	return strings.ToLower(common.BytesToAddress(b).Hex()), nil
}

// TronBase58 renders a canonical TRON hex address in its base58check form
func TronBase58(addr string) (string, error) {
	canonical, err := normalizeTron(addr)
	if err != nil {
		return "", err
	}
	raw, _ := hex.DecodeString(canonical)
	sum := doubleSHA256(raw)
	return base58.Encode(append(raw, sum[:4]...)), nil
}

func normalizeEVM(addr string) (string, error) {
	if !common.IsHexAddress(addr) {
		return "", fmt.Errorf("%w: %q is not an EVM address", ErrInvalidAddress, addr)
	}
	return strings.ToLower(common.HexToAddress(addr).Hex()), nil
}

func normalizeTron(addr string) (string, error) {
	switch {
	case strings.HasPrefix(addr, "T") && len(addr) == 34:
		return decodeTronBase58(addr)
	case has0xPrefix(addr) && len(addr) == 42:
		body := strings.ToLower(addr[2:])
		if !isHex(body) {
			return "", fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
		}
		return "41" + body, nil
	case strings.HasPrefix(addr, "41") && len(addr) == 42:
		lower := strings.ToLower(addr)
		if !isHex(lower) {
			return "", fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
		}
		return lower, nil
	default:
		return "", fmt.Errorf("%w: %q is not a TRON address", ErrInvalidAddress, addr)
	}
}

func decodeTronBase58(addr string) (string, error) {
	decoded, err := base58.Decode(addr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(decoded) != 25 {
		return "", fmt.Errorf("%w: decoded length %d", ErrInvalidAddress, len(decoded))
	}

	payload, checksum := decoded[:21], decoded[21:]
	sum := doubleSHA256(payload)
	if !bytes.Equal(sum[:4], checksum) {
		return "", fmt.Errorf("%w: checksum mismatch for %q", ErrInvalidAddress, addr)
	}
	if payload[0] != tronPrefix {
		return "", fmt.Errorf("%w: unexpected prefix 0x%02x", ErrInvalidAddress, payload[0])
	}
	return hex.EncodeToString(payload), nil
}

func doubleSHA256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

func isHex(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil
}

// NormalizeTxID converts a transaction identifier into the canonical form of
// family: EVM hashes are lowercase with a 0x prefix, TRON ids are lowercase
// without one.
func NormalizeTxID(family Family, txID string) string {
	txID = strings.ToLower(strings.TrimSpace(txID))
	if family == FamilyTron {
		return strings.TrimPrefix(txID, "0x")
	}
	if !strings.HasPrefix(txID, "0x") {
		txID = "0x" + txID
	}
	return txID
}

// ValidTxID reports whether txID is a 32 byte hex identifier once normalized
func ValidTxID(family Family, txID string) bool {
	id := strings.TrimPrefix(NormalizeTxID(family, txID), "0x")
	return len(id) == 64 && isHex(id)
}
