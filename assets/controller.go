// Package assets holds the wallet side collaborators that look token
// metadata up on chain. They are consulted only for tokens the bundled
// registry does not know.
package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/tranvictor/allowance/util"
)

// ErrNotAToken is returned when the address answers symbol() with nothing
// usable.
var ErrNotAToken = errors.New("contract returned no symbol")

// maxSymbolLength bounds what a contract may push onto the screen.
const maxSymbolLength = 32

// Controller fetches a token symbol for an address that is not in the
// bundled registry. Implementations may hit the network.
type Controller interface {
	GetAssetSymbol(ctx context.Context, address string) (string, error)
}

// SymbolReader is the slice of reader.EthReader the contract controller
// needs.
type SymbolReader interface {
	ERC20Symbol(ctx context.Context, caddr string) (string, error)
}

// ContractController reads symbol() from the token contract itself.
type ContractController struct {
	reader SymbolReader
	logger *zap.Logger
}

func NewContractController(reader SymbolReader, logger *zap.Logger) *ContractController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContractController{reader: reader, logger: logger}
}

func (c *ContractController) GetAssetSymbol(ctx context.Context, address string) (string, error) {
	addr, err := util.ToChecksumAddress(address)
	if err != nil {
		return "", err
	}
	if !util.IsRealAddress(addr) {
		return "", fmt.Errorf("%s: %w", addr, ErrNotAToken)
	}
	raw, err := c.reader.ERC20Symbol(ctx, addr)
	if err != nil {
		c.logger.Debug("symbol() call failed", zap.String("address", addr), zap.Error(err))
		return "", fmt.Errorf("symbol: %w", err)
	}
	symbol := SanitizeSymbol(raw)
	if symbol == "" {
		return "", fmt.Errorf("%s: %w", addr, ErrNotAToken)
	}
	return symbol, nil
}

// SanitizeSymbol folds compatibility characters (fullwidth letters and the
// like) with NFKC, drops control and format runes, trims and truncates.
// Symbols come from arbitrary contracts and end up in a terminal.
func SanitizeSymbol(raw string) string {
	folded := norm.NFKC.String(raw)
	var b strings.Builder
	for _, r := range folded {
		if unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			continue
		}
		b.WriteRune(r)
	}
	symbol := strings.TrimSpace(b.String())
	if runes := []rune(symbol); len(runes) > maxSymbolLength {
		symbol = string(runes[:maxSymbolLength])
	}
	return symbol
}
