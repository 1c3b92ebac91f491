package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/trafylabs/academy-api/internal/domain/identity"
	"github.com/trafylabs/academy-api/pkg/logger"
)

// Bridge performs the one-shot cookie handoff check for a single page load.
// A token exchange failure is silent: the visitor simply stays
// unauthenticated and the interactive form takes over.
type Bridge struct {
	provider identity.Provider
	logger   logger.Logger

	mu        sync.Mutex
	done      bool
	exchanged bool
	result    BridgeResult
}

type BridgeResult struct {
	// Exchanged means the handoff token produced a session; the caller
	// should navigate back to the referring page.
	Exchanged bool
	// LoginLive means the interactive login form is the live submission
	// path for this page load.
	LoginLive bool
}

func NewBridge(provider identity.Provider, log logger.Logger) *Bridge {
	return &Bridge{provider: provider, logger: log}
}

// Run inspects the cookie token once. Re-renders call Run again and get the
// first outcome back; the exchange is never repeated. Run holds the bridge
// lock across the exchange, so an interactive login racing the handoff
// observes a decided bridge.
func (b *Bridge) Run(ctx context.Context, cookieToken string) BridgeResult {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.done {
		return b.result
	}
	b.done = true

	if cookieToken == "" {
		b.result = BridgeResult{LoginLive: true}
		return b.result
	}

	if _, err := b.provider.SignInWithToken(ctx, cookieToken); err != nil {
		// Expected for plain visits with a stale cookie; never surfaced.
		b.logger.Warn("Handoff token exchange failed", zap.Error(err))
		b.result = BridgeResult{LoginLive: true}
		return b.result
	}

	b.exchanged = true
	b.result = BridgeResult{Exchanged: true}
	return b.result
}

// InteractiveLoginAllowed reports whether a local form login may proceed:
// only after the bridge has run without establishing a session.
func (b *Bridge) InteractiveLoginAllowed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.done && !b.exchanged
}
