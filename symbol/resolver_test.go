package symbol_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/tranvictor/allowance/db"
	"github.com/tranvictor/allowance/symbol"
)

const (
	usdcMainnet  = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	unknownToken = "0xDEADBEEFdeadbeefDEADBEEFdeadbeefDEADBEEF"
)

// recordingRegistry wraps a registry and remembers whether it was consulted.
type recordingRegistry struct {
	inner   symbol.Registry
	lookups int
}

func (r *recordingRegistry) Lookup(address string) (db.TokenMetadata, bool) {
	r.lookups++
	return r.inner.Lookup(address)
}

type stubController struct {
	t        *testing.T
	registry *recordingRegistry
	symbol   string
	err      error
	calls    []string
}

func (s *stubController) GetAssetSymbol(ctx context.Context, address string) (string, error) {
	if s.registry != nil && s.registry.lookups == 0 {
		s.t.Fatalf("controller called for %s before the registry was consulted", address)
	}
	s.calls = append(s.calls, address)
	return s.symbol, s.err
}

func newResolver(t *testing.T, registry symbol.Registry, ctrl *stubController) (*symbol.Resolver, *recordingRegistry) {
	t.Helper()
	rec := &recordingRegistry{inner: registry}
	ctrl.t = t
	ctrl.registry = rec
	return symbol.NewResolver(rec, ctrl, zaptest.NewLogger(t)), rec
}

func TestKnownTokenInAnyCasingSkipsController(t *testing.T) {
	ctrl := &stubController{symbol: "WRONG"}
	r, _ := newResolver(t, db.Default(), ctrl)

	for _, addr := range []string{
		usdcMainnet,
		strings.ToLower(usdcMainnet),
		"0x" + strings.ToUpper(usdcMainnet[2:]),
	} {
		got, err := r.ResolveSymbol(context.Background(), addr)
		if err != nil {
			t.Fatalf("ResolveSymbol(%s): %s", addr, err)
		}
		if got != "USDC" {
			t.Errorf("ResolveSymbol(%s) = %q, want USDC", addr, got)
		}
	}
	if len(ctrl.calls) != 0 {
		t.Errorf("controller called %d times for a known token", len(ctrl.calls))
	}
}

func TestEveryRegistryTokenResolvesLocally(t *testing.T) {
	ctrl := &stubController{symbol: "WRONG"}
	r, _ := newResolver(t, db.Default(), ctrl)
	for _, token := range db.Default().All() {
		got, err := r.ResolveSymbol(context.Background(), strings.ToLower(token.Address))
		if err != nil || got != token.Symbol {
			t.Errorf("ResolveSymbol(%s) = %q, %v; want %q", token.Address, got, err, token.Symbol)
		}
	}
	if len(ctrl.calls) != 0 {
		t.Errorf("controller called %d times", len(ctrl.calls))
	}
}

func TestResolveIsIdempotentForKnownTokens(t *testing.T) {
	ctrl := &stubController{}
	r, _ := newResolver(t, db.Default(), ctrl)
	first, err1 := r.ResolveSymbol(context.Background(), usdcMainnet)
	second, err2 := r.ResolveSymbol(context.Background(), usdcMainnet)
	if err1 != nil || err2 != nil || first != second {
		t.Fatalf("got (%q, %v) then (%q, %v)", first, err1, second, err2)
	}
	if len(ctrl.calls) != 0 {
		t.Errorf("controller called %d times", len(ctrl.calls))
	}
}

func TestUnknownTokenUsesControllerWithOriginalAddress(t *testing.T) {
	ctrl := &stubController{symbol: "FOO"}
	r, rec := newResolver(t, db.Default(), ctrl)

	got, err := r.ResolveSymbol(context.Background(), unknownToken)
	if err != nil {
		t.Fatalf("ResolveSymbol: %s", err)
	}
	if got != "FOO" {
		t.Errorf("symbol = %q, want FOO", got)
	}
	if len(ctrl.calls) != 1 {
		t.Fatalf("controller called %d times, want 1", len(ctrl.calls))
	}
	if ctrl.calls[0] != unknownToken {
		t.Errorf("controller got %q, want the unmodified %q", ctrl.calls[0], unknownToken)
	}
	if rec.lookups != 1 {
		t.Errorf("registry consulted %d times, want 1", rec.lookups)
	}
}

func TestControllerFailureIsSymbolUnavailable(t *testing.T) {
	boom := errors.New("network down")
	ctrl := &stubController{err: boom}
	r, _ := newResolver(t, db.Default(), ctrl)

	_, err := r.ResolveSymbol(context.Background(), unknownToken)
	if !errors.Is(err, symbol.ErrSymbolUnavailable) {
		t.Fatalf("err = %v, want ErrSymbolUnavailable", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("err = %v does not wrap the controller error", err)
	}
	if len(ctrl.calls) != 1 {
		t.Errorf("controller called %d times, want 1", len(ctrl.calls))
	}
}

func TestEmptyControllerResultIsSymbolUnavailable(t *testing.T) {
	ctrl := &stubController{symbol: "   "}
	r, _ := newResolver(t, db.Default(), ctrl)
	if _, err := r.ResolveSymbol(context.Background(), unknownToken); !errors.Is(err, symbol.ErrSymbolUnavailable) {
		t.Fatalf("err = %v, want ErrSymbolUnavailable", err)
	}
}

func TestMalformedAddressFailsBeforeAnyLookup(t *testing.T) {
	ctrl := &stubController{symbol: "FOO"}
	r, rec := newResolver(t, db.Default(), ctrl)

	for _, addr := range []string{"not-an-address", "", "0x1234", "0xZZb86991c6218b36c1d19D4a2e9Eb0cE3606eB48"} {
		_, err := r.ResolveSymbol(context.Background(), addr)
		if !errors.Is(err, symbol.ErrInvalidAddress) {
			t.Errorf("ResolveSymbol(%q) err = %v, want ErrInvalidAddress", addr, err)
		}
	}
	if len(ctrl.calls) != 0 || rec.lookups != 0 {
		t.Errorf("controller calls = %d, registry lookups = %d; want 0, 0", len(ctrl.calls), rec.lookups)
	}
}

func TestEmptyRegistrySymbolFallsThroughToController(t *testing.T) {
	registry := db.NewRegistry([]db.TokenMetadata{
		{Address: unknownToken, Symbol: "", Decimals: 18, Name: "Nameless"},
	})
	ctrl := &stubController{symbol: "ONCHAIN"}
	r, _ := newResolver(t, registry, ctrl)

	got, err := r.ResolveSymbol(context.Background(), unknownToken)
	if err != nil || got != "ONCHAIN" {
		t.Fatalf("ResolveSymbol = %q, %v; want ONCHAIN", got, err)
	}
	if len(ctrl.calls) != 1 {
		t.Errorf("controller called %d times, want 1", len(ctrl.calls))
	}
}

func TestNilControllerOnMiss(t *testing.T) {
	r := symbol.NewResolver(db.Default(), nil, nil)
	if _, err := r.ResolveSymbol(context.Background(), unknownToken); !errors.Is(err, symbol.ErrSymbolUnavailable) {
		t.Fatalf("err = %v, want ErrSymbolUnavailable", err)
	}
	if got, err := r.ResolveSymbol(context.Background(), usdcMainnet); err != nil || got != "USDC" {
		t.Fatalf("known token = %q, %v", got, err)
	}
}
