package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var ErrInvalidAddress = errors.New("invalid address")

// ToChecksumAddress returns the EIP-55 checksummed form of address. It only
// accepts 20-byte hex strings, with or without the 0x prefix.
func ToChecksumAddress(address string) (string, error) {
	trimmed := strings.TrimSpace(address)
	if !common.IsHexAddress(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return common.HexToAddress(trimmed).Hex(), nil
}

// IsRealAddress reports whether address is a well formed, non zero address.
func IsRealAddress(address string) bool {
	checksummed, err := ToChecksumAddress(address)
	if err != nil {
		return false
	}
	return checksummed != (common.Address{}).Hex()
}
