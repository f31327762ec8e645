// Package approve implements the approval prompt shown when a site asks for
// permission to spend one of the user's ERC20 tokens.
//
// A Screen owns the prompt state. It starts in Loading, derives the site
// host when mounted and moves to Resolved once the token symbol lookup
// settles. Render turns a state snapshot into a Prompt without side effects.
package approve

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tranvictor/allowance/util"
)

// UnknownSymbol is shown when the token symbol could not be resolved.
const UnknownSymbol = "unknown"

type Phase int

const (
	Loading Phase = iota
	Resolved
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Resolved:
		return "resolved"
	default:
		return "phase(?)"
	}
}

// State is a snapshot of a Screen. Host and TokenSymbol are empty while
// Loading. Err holds the resolution failure, if any.
type State struct {
	Phase       Phase
	Host        string
	TokenSymbol string
	Err         error
}

// SymbolResolver is implemented by *symbol.Resolver.
type SymbolResolver interface {
	ResolveSymbol(ctx context.Context, address string) (string, error)
}

type Option func(*Screen)

// WithHostFunc replaces util.GetHost as the host extractor.
func WithHostFunc(f func(string) string) Option {
	return func(s *Screen) {
		if f != nil {
			s.hostFunc = f
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Screen) {
		if l != nil {
			s.logger = l
		}
	}
}

type Screen struct {
	id       string
	req      ApprovalRequest
	resolver SymbolResolver
	hostFunc func(string) string
	logger   *zap.Logger

	mu      sync.Mutex
	state   State
	host    string
	started bool
	mounted bool
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewScreen(req ApprovalRequest, resolver SymbolResolver, opts ...Option) *Screen {
	s := &Screen{
		id:       uuid.NewString(),
		req:      req,
		resolver: resolver,
		hostFunc: util.GetHost,
		logger:   zap.NewNop(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("screen", s.id))
	return s
}

func (s *Screen) ID() string {
	return s.id
}

func (s *Screen) Request() ApprovalRequest {
	return s.req
}

// Mount derives the host and starts the symbol lookup in the background.
// The host is published together with the symbol when the lookup settles.
// Only the first call has an effect.
func (s *Screen) Mount(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mounted = true
	s.host = s.hostFunc(s.req.Origin)
	rctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.logger.Debug("screen mounted",
		zap.String("origin", s.req.Origin),
		zap.String("to", s.req.To),
	)
	go s.resolve(rctx)
}

func (s *Screen) resolve(ctx context.Context) {
	start := time.Now()
	sym, err := s.resolver.ResolveSymbol(ctx, s.req.To)
	s.apply(sym, err, time.Since(start))
}

func (s *Screen) apply(sym string, err error, took time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted {
		s.logger.Debug("dropping symbol result for unmounted screen",
			zap.String("symbol", sym),
			zap.Error(err),
		)
		return
	}
	s.state.Phase = Resolved
	s.state.Host = s.host
	if err != nil {
		s.state.TokenSymbol = UnknownSymbol
		s.state.Err = err
		s.logger.Warn("token symbol unresolved",
			zap.String("to", s.req.To),
			zap.Duration("took", took),
			zap.Error(err),
		)
	} else {
		s.state.TokenSymbol = sym
		s.logger.Debug("token symbol resolved",
			zap.String("symbol", sym),
			zap.Duration("took", took),
		)
	}
	s.cancel()
	close(s.done)
}

// Unmount tears the screen down. An in-flight lookup is cancelled and its
// result, if it still arrives, is discarded.
func (s *Screen) Unmount() {
	s.mu.Lock()
	s.mounted = false
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Done is closed when the screen reaches Resolved. It never closes for a
// screen unmounted before that.
func (s *Screen) Done() <-chan struct{} {
	return s.done
}

func (s *Screen) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Wait blocks until the screen is resolved or ctx ends.
func (s *Screen) Wait(ctx context.Context) (State, error) {
	select {
	case <-s.done:
		return s.State(), nil
	case <-ctx.Done():
		return s.State(), ctx.Err()
	}
}

// Prompt renders the current state.
func (s *Screen) Prompt() Prompt {
	return Render(s.State(), s.req)
}
