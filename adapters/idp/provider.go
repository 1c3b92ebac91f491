package idp

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trafylabs/academy-api/adapters/persistence"
	"github.com/trafylabs/academy-api/internal/domain/identity"
	"github.com/trafylabs/academy-api/internal/domain/user"
	"github.com/trafylabs/academy-api/pkg/auth"
	"github.com/trafylabs/academy-api/pkg/logger"
)

// Provider implements the identity collaborator on top of the users table,
// the Redis handoff-token store, and an in-process change stream. The
// change stream has exactly one writer: the provider itself.
type Provider struct {
	users   user.Repository
	handoff *persistence.RedisHandoffStore
	logger  logger.Logger

	mu        sync.Mutex
	current   *identity.Identity
	subs      map[int]func(*identity.Identity)
	nextSubID int
}

func NewProvider(users user.Repository, handoff *persistence.RedisHandoffStore, log logger.Logger) *Provider {
	return &Provider{
		users:   users,
		handoff: handoff,
		logger:  log,
		subs:    make(map[int]func(*identity.Identity)),
	}
}

func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (*identity.Identity, error) {
	u, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, identity.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(password, u.PasswordHash) {
		return nil, identity.ErrInvalidCredentials
	}

	id := toIdentity(u)
	p.setCurrent(id)
	return id, nil
}

func (p *Provider) SignInWithToken(ctx context.Context, token string) (*identity.Identity, error) {
	uid, err := p.handoff.Redeem(ctx, token)
	if err != nil {
		return nil, err
	}

	u, err := p.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, identity.ErrInvalidToken
		}
		return nil, err
	}

	id := toIdentity(u)
	p.setCurrent(id)
	return id, nil
}

// SignInWithFederated trusts an assertion the HTTP layer already verified
// against the external provider. First-time users get an account keyed by
// their email, with the first name derived from the email local part.
func (p *Provider) SignInWithFederated(ctx context.Context, assertion identity.FederatedAssertion) (*identity.Identity, error) {
	if assertion.Subject == "" || assertion.Email == "" {
		return nil, identity.ErrPopupClosed
	}

	u, err := p.users.FindByEmail(ctx, assertion.Email)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return nil, err
		}
		firstName := identity.LocalPart(assertion.Email)
		u = &user.User{
			ID:        uuid.New(),
			Email:     assertion.Email,
			FirstName: &firstName,
		}
		if err := p.users.Save(ctx, u); err != nil {
			return nil, err
		}
		p.logger.Info("Created user from federated sign-in",
			zap.String("provider", assertion.Provider), zap.String("user_id", u.ID.String()))
	}

	id := toIdentity(u)
	p.setCurrent(id)
	return id, nil
}

func (p *Provider) SignOut(ctx context.Context) error {
	p.setCurrent(nil)
	return nil
}

// Subscribe delivers the current state immediately, then every change.
func (p *Provider) Subscribe(fn func(*identity.Identity)) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextSubID
	p.nextSubID++
	p.subs[id] = fn
	current := p.current
	p.mu.Unlock()

	fn(current)

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// IssueHandoffToken mints a one-time token another domain can redeem via
// SignInWithToken.
func (p *Provider) IssueHandoffToken(ctx context.Context, uid uuid.UUID) (string, error) {
	return p.handoff.Issue(ctx, uid)
}

func (p *Provider) setCurrent(id *identity.Identity) {
	p.mu.Lock()
	p.current = id
	listeners := make([]func(*identity.Identity), 0, len(p.subs))
	for _, fn := range p.subs {
		listeners = append(listeners, fn)
	}
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(id)
	}
}

func toIdentity(u *user.User) *identity.Identity {
	id := &identity.Identity{ID: u.ID, Email: u.Email}
	if u.FirstName != nil {
		id.FirstName = *u.FirstName
	}
	return id
}
