package reader

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

type EthereumNode interface {
	NodeName() string
	NodeURL() string
	ReadContractToBytes(
		ctx context.Context,
		atBlock int64,
		from string,
		caddr string,
		abi *abi.ABI,
		method string,
		args ...interface{},
	) ([]byte, error)
}
