package approve_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/tranvictor/allowance/approve"
	"github.com/tranvictor/allowance/db"
	"github.com/tranvictor/allowance/symbol"
)

const (
	usdcMainnet  = "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48"
	unknownToken = "0xDEADBEEFdeadbeefDEADBEEFdeadbeefDEADBEEF"
)

type countingController struct {
	mu     sync.Mutex
	calls  int
	symbol string
	err    error
}

func (c *countingController) GetAssetSymbol(ctx context.Context, address string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.symbol, c.err
}

func (c *countingController) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// blockingResolver holds every lookup until release is closed.
type blockingResolver struct {
	started chan struct{}
	release chan struct{}
	symbol  string
	ctxErr  chan error
}

func newBlockingResolver(sym string) *blockingResolver {
	return &blockingResolver{
		started: make(chan struct{}),
		release: make(chan struct{}),
		symbol:  sym,
		ctxErr:  make(chan error, 1),
	}
}

func (b *blockingResolver) ResolveSymbol(ctx context.Context, address string) (string, error) {
	close(b.started)
	<-b.release
	b.ctxErr <- ctx.Err()
	return b.symbol, nil
}

func waitResolved(t *testing.T, s *approve.Screen) approve.State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st, err := s.Wait(ctx)
	if err != nil {
		t.Fatalf("screen did not resolve: %s", err)
	}
	return st
}

func TestScreenResolvesKnownToken(t *testing.T) {
	ctrl := &countingController{symbol: "WRONG"}
	r := symbol.NewResolver(db.Default(), ctrl, zaptest.NewLogger(t))
	s := approve.NewScreen(approve.ApprovalRequest{
		Origin: "https://app.uniswap.org/#/swap",
		To:     strings.ToLower(usdcMainnet),
	}, r, approve.WithLogger(zaptest.NewLogger(t)))

	s.Mount(context.Background())
	st := waitResolved(t, s)

	if st.Phase != approve.Resolved {
		t.Fatalf("phase = %s, want resolved", st.Phase)
	}
	if st.Host != "app.uniswap.org" || st.TokenSymbol != "USDC" || st.Err != nil {
		t.Errorf("unexpected state %+v", st)
	}
	if ctrl.Calls() != 0 {
		t.Errorf("controller called %d times", ctrl.Calls())
	}
}

func TestScreenFailedLookupResolvesToUnknown(t *testing.T) {
	ctrl := &countingController{err: errors.New("execution reverted")}
	r := symbol.NewResolver(db.Default(), ctrl, zaptest.NewLogger(t))
	s := approve.NewScreen(approve.ApprovalRequest{Origin: "https://evil.example", To: unknownToken}, r,
		approve.WithLogger(zaptest.NewLogger(t)))

	s.Mount(context.Background())
	st := waitResolved(t, s)

	if st.Phase != approve.Resolved {
		t.Fatalf("phase = %s, want resolved", st.Phase)
	}
	if st.TokenSymbol != approve.UnknownSymbol {
		t.Errorf("symbol = %q, want %q", st.TokenSymbol, approve.UnknownSymbol)
	}
	if !errors.Is(st.Err, symbol.ErrSymbolUnavailable) {
		t.Errorf("err = %v, want ErrSymbolUnavailable", st.Err)
	}
	if ctrl.Calls() != 1 {
		t.Errorf("controller called %d times, want 1", ctrl.Calls())
	}
}

func TestScreenInvalidAddress(t *testing.T) {
	ctrl := &countingController{symbol: "FOO"}
	r := symbol.NewResolver(db.Default(), ctrl, zaptest.NewLogger(t))
	s := approve.NewScreen(approve.ApprovalRequest{Origin: "dapp.example", To: "not-an-address"}, r,
		approve.WithLogger(zaptest.NewLogger(t)))

	s.Mount(context.Background())
	st := waitResolved(t, s)

	if !errors.Is(st.Err, symbol.ErrInvalidAddress) {
		t.Fatalf("err = %v, want ErrInvalidAddress", st.Err)
	}
	if got := approve.Render(st, s.Request()).Status.Text; got != approve.StatusInvalid {
		t.Errorf("status = %q, want %q", got, approve.StatusInvalid)
	}
	if ctrl.Calls() != 0 {
		t.Errorf("controller called for a malformed address")
	}
}

func TestMountIsIdempotent(t *testing.T) {
	ctrl := &countingController{symbol: "FOO"}
	r := symbol.NewResolver(db.Default(), ctrl, zaptest.NewLogger(t))
	s := approve.NewScreen(approve.ApprovalRequest{Origin: "https://foo.example", To: unknownToken}, r)

	for i := 0; i < 3; i++ {
		s.Mount(context.Background())
	}
	st := waitResolved(t, s)
	s.Mount(context.Background())

	if st.TokenSymbol != "FOO" {
		t.Errorf("symbol = %q, want FOO", st.TokenSymbol)
	}
	if ctrl.Calls() != 1 {
		t.Errorf("controller called %d times, want 1", ctrl.Calls())
	}
}

func TestHostIsPublishedWithSymbol(t *testing.T) {
	res := newBlockingResolver("FOO")
	var seen string
	s := approve.NewScreen(approve.ApprovalRequest{Origin: "origin-value", To: unknownToken}, res,
		approve.WithHostFunc(func(origin string) string {
			seen = origin
			return "custom.host"
		}))

	s.Mount(context.Background())
	<-res.started

	// derived on mount, but not visible until the lookup settles
	if seen != "origin-value" {
		t.Errorf("host func called with %q", seen)
	}
	st := s.State()
	if st.Phase != approve.Loading || st.Host != "" || st.TokenSymbol != "" {
		t.Errorf("expected Loading with no host or symbol, got %+v", st)
	}
	if title := approve.Render(st, s.Request()).Title; title != "Allow  to access your ?" {
		t.Errorf("loading title = %q", title)
	}

	close(res.release)
	got := waitResolved(t, s)
	if got.Host != "custom.host" || got.TokenSymbol != "FOO" {
		t.Errorf("resolved state = %+v", got)
	}
}

func TestLateResultAfterUnmountIsDropped(t *testing.T) {
	res := newBlockingResolver("FOO")
	s := approve.NewScreen(approve.ApprovalRequest{Origin: "https://foo.example", To: unknownToken}, res)

	s.Mount(context.Background())
	<-res.started
	s.Unmount()
	close(res.release)

	if err := <-res.ctxErr; !errors.Is(err, context.Canceled) {
		t.Errorf("resolver context err = %v, want context.Canceled", err)
	}

	select {
	case <-s.Done():
		t.Fatal("screen resolved after unmount")
	case <-time.After(100 * time.Millisecond):
	}
	st := s.State()
	if st.Phase != approve.Loading || st.TokenSymbol != "" || st.Host != "" {
		t.Errorf("late result was applied: %+v", st)
	}
}

func TestUnmountBeforeMount(t *testing.T) {
	s := approve.NewScreen(approve.ApprovalRequest{}, newBlockingResolver("FOO"))
	s.Unmount()
	if st := s.State(); st.Phase != approve.Loading {
		t.Errorf("phase = %s", st.Phase)
	}
}

func TestScreensResolveIndependently(t *testing.T) {
	ctrl := &countingController{symbol: "FOO"}
	r := symbol.NewResolver(db.Default(), ctrl, zaptest.NewLogger(t))
	req := approve.ApprovalRequest{Origin: "https://foo.example", To: unknownToken}

	a := approve.NewScreen(req, r)
	b := approve.NewScreen(req, r)
	if a.ID() == b.ID() {
		t.Fatal("screens share an id")
	}
	a.Mount(context.Background())
	b.Mount(context.Background())
	waitResolved(t, a)
	waitResolved(t, b)

	if ctrl.Calls() != 2 {
		t.Errorf("controller called %d times, want 2", ctrl.Calls())
	}
}
