package assets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tranvictor/allowance/util"
)

// Store is a persistent string map. *cache.SimpleCache implements it.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// CachedController remembers symbols fetched by inner across runs. Only
// successful lookups are stored. Entries are scoped to one network since the
// same address can hold different contracts on different chains.
type CachedController struct {
	inner   Controller
	store   Store
	network string
	logger  *zap.Logger
}

func NewCachedController(inner Controller, store Store, network string, logger *zap.Logger) *CachedController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedController{
		inner:   inner,
		store:   store,
		network: strings.ToLower(strings.TrimSpace(network)),
		logger:  logger,
	}
}

// symbolCacheKey is "<network>_<checksummed address>_symbol". The cache
// compares keys case-insensitively.
func symbolCacheKey(network, checksummed string) string {
	return fmt.Sprintf("%s_%s_symbol", network, checksummed)
}

func (c *CachedController) GetAssetSymbol(ctx context.Context, address string) (string, error) {
	checksummed, err := util.ToChecksumAddress(address)
	if err != nil {
		// nothing sensible to key on, let inner report it
		return c.inner.GetAssetSymbol(ctx, address)
	}
	key := symbolCacheKey(c.network, checksummed)
	if symbol, found := c.store.Get(key); found && symbol != "" {
		return symbol, nil
	}
	symbol, err := c.inner.GetAssetSymbol(ctx, address)
	if err != nil {
		return "", err
	}
	if err := c.store.Set(key, symbol); err != nil {
		// the symbol is still good, we just fetch it again next time
		c.logger.Warn("couldn't persist symbol", zap.String("address", address), zap.Error(err))
	}
	return symbol, nil
}
