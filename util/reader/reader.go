package reader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"

	allowancecommon "github.com/tranvictor/allowance/common"
)

var DEFAULT_ADDRESS string = "0x0000000000000000000000000000000000000000"

var ErrNoNodes = errors.New("no nodes configured")

// EthReader sends every read to all of its nodes at once and takes the first
// successful answer.
type EthReader struct {
	nodes map[string]EthereumNode
}

func NewEthReaderGeneric(nodes map[string]string, timeout time.Duration) *EthReader {
	ns := map[string]EthereumNode{}
	for name, url := range nodes {
		ns[name] = NewOneNodeReader(name, url, timeout)
	}
	return NewEthReaderWithNodes(ns)
}

func NewEthReaderWithNodes(nodes map[string]EthereumNode) *EthReader {
	return &EthReader{nodes: nodes}
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type readContractToBytesResponse struct {
	Data  []byte
	Error error
}

func (er *EthReader) ReadContractToBytes(
	ctx context.Context,
	atBlock int64,
	from string,
	caddr string,
	abi *abi.ABI,
	method string,
	args ...interface{},
) ([]byte, error) {
	if len(er.nodes) == 0 {
		return nil, ErrNoNodes
	}
	resCh := make(chan readContractToBytesResponse, len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			data, err := n.ReadContractToBytes(ctx, atBlock, from, caddr, abi, method, args...)
			resCh <- readContractToBytesResponse{
				Data:  data,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		select {
		case result := <-resCh:
			if result.Error == nil {
				return result.Data, nil
			}
			errs = append(errs, result.Error)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

func (er *EthReader) ReadContractWithABI(
	ctx context.Context,
	result interface{},
	caddr string,
	abi *abi.ABI,
	method string,
	args ...interface{},
) error {
	responseBytes, err := er.ReadContractToBytes(ctx, -1, DEFAULT_ADDRESS, caddr, abi, method, args...)
	if err != nil {
		return err
	}
	return abi.UnpackIntoInterface(result, method, responseBytes)
}

// ERC20Symbol reads symbol() as a string and falls back to decoding the same
// response as bytes32 for tokens that predate the standard.
func (er *EthReader) ERC20Symbol(ctx context.Context, caddr string) (string, error) {
	return er.readStringOrBytes32(ctx, caddr, "symbol")
}

func (er *EthReader) ERC20Name(ctx context.Context, caddr string) (string, error) {
	return er.readStringOrBytes32(ctx, caddr, "name")
}

func (er *EthReader) ERC20Decimal(ctx context.Context, caddr string) (uint64, error) {
	abi := allowancecommon.GetERC20ABI()
	var result uint8
	err := er.ReadContractWithABI(ctx, &result, caddr, abi, "decimals")
	return uint64(result), err
}

func (er *EthReader) readStringOrBytes32(ctx context.Context, caddr string, method string) (string, error) {
	stringABI := allowancecommon.GetERC20ABI()
	responseBytes, err := er.ReadContractToBytes(ctx, -1, DEFAULT_ADDRESS, caddr, stringABI, method)
	if err != nil {
		return "", err
	}
	var result string
	stringErr := stringABI.UnpackIntoInterface(&result, method, responseBytes)
	if stringErr == nil {
		return result, nil
	}
	var raw [32]byte
	if err := allowancecommon.GetERC20Bytes32ABI().UnpackIntoInterface(&raw, method, responseBytes); err != nil {
		return "", fmt.Errorf("decoding %s of %s: %w", method, caddr, stringErr)
	}
	return strings.TrimSpace(allowancecommon.Bytes32ToString(raw)), nil
}
