// Package symbol turns a token contract address into the symbol shown on an
// approval prompt. The bundled registry answers synchronously; only unknown
// tokens reach the asset controller.
package symbol

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tranvictor/allowance/assets"
	"github.com/tranvictor/allowance/db"
	"github.com/tranvictor/allowance/util"
)

var (
	// ErrInvalidAddress means the contract address is malformed. The request
	// can't be displayed safely and should not be retried.
	ErrInvalidAddress = errors.New("invalid token address")
	// ErrSymbolUnavailable means neither the registry nor the controller
	// produced a symbol.
	ErrSymbolUnavailable = errors.New("token symbol unavailable")
)

// Registry is the static metadata lookup. *db.Registry implements it.
type Registry interface {
	Lookup(address string) (db.TokenMetadata, bool)
}

type Resolver struct {
	registry   Registry
	controller assets.Controller
	logger     *zap.Logger
}

func NewResolver(registry Registry, controller assets.Controller, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		registry:   registry,
		controller: controller,
		logger:     logger,
	}
}

// ResolveSymbol returns the display symbol of the token at address.
//
// Known tokens are answered from the registry without touching the
// controller. Unknown ones cost exactly one controller call, made with
// address exactly as the caller passed it.
func (r *Resolver) ResolveSymbol(ctx context.Context, address string) (string, error) {
	checksummed, err := util.ToChecksumAddress(address)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	if token, found := r.registry.Lookup(checksummed); found {
		if symbol := strings.TrimSpace(token.Symbol); symbol != "" {
			return symbol, nil
		}
		// an entry without a symbol is no better than no entry
		r.logger.Debug("registry entry has no symbol", zap.String("address", checksummed))
	}

	if r.controller == nil {
		return "", fmt.Errorf("%w: %s is not in the registry", ErrSymbolUnavailable, checksummed)
	}
	symbol, err := r.controller.GetAssetSymbol(ctx, address)
	if err != nil {
		r.logger.Debug("asset controller failed", zap.String("address", checksummed), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrSymbolUnavailable, err)
	}
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return "", fmt.Errorf("%w: controller returned an empty symbol for %s", ErrSymbolUnavailable, checksummed)
	}
	return symbol, nil
}
