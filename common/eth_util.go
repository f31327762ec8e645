package common

import (
	"bytes"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	erc20ABI        *abi.ABI
	erc20Bytes32ABI *abi.ABI
	abiOnce         sync.Once
)

func mustParseABI(content string) *abi.ABI {
	result, err := abi.JSON(strings.NewReader(content))
	if err != nil {
		panic(err)
	}
	return &result
}

func loadABIs() {
	abiOnce.Do(func() {
		erc20ABI = mustParseABI(erc20abi)
		erc20Bytes32ABI = mustParseABI(erc20bytes32abi)
	})
}

func GetERC20ABI() *abi.ABI {
	loadABIs()
	return erc20ABI
}

func GetERC20Bytes32ABI() *abi.ABI {
	loadABIs()
	return erc20Bytes32ABI
}

func PackERC20Data(function string, params ...interface{}) ([]byte, error) {
	return GetERC20ABI().Pack(function, params...)
}

func HexToAddress(hex string) common.Address {
	return common.HexToAddress(hex)
}

// Bytes32ToString decodes a NUL padded bytes32 string value.
func Bytes32ToString(b [32]byte) string {
	return string(bytes.TrimRight(b[:], "\x00"))
}
