package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Identity is the authenticated principal for the current session. It is a
// read-only snapshot owned by the provider; consumers never mutate it.
type Identity struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
}

// DisplayName is the explicit first name when one exists, otherwise the
// local part of the email address.
func (i *Identity) DisplayName() string {
	if i.FirstName != "" {
		return i.FirstName
	}
	return LocalPart(i.Email)
}

// LocalPart returns the substring of an email address before the '@'.
func LocalPart(email string) string {
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}

var (
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrInvalidToken       = errors.New("invalid handoff token")
	// ErrPopupClosed is the user cancelling a federated sign-in; callers
	// suppress the error banner for it.
	ErrPopupClosed = errors.New("sign-in popup closed by user")
	ErrPopupBlocked = errors.New("sign-in popup blocked")
)

// FederatedAssertion is the profile handed back by a federated sign-in
// flow once the external provider has vouched for the user.
type FederatedAssertion struct {
	Provider string
	Subject  string
	Email    string
}

// Provider is the identity collaborator. Change notifications have a single
// writer (the provider itself); subscribers only read.
type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Identity, error)
	SignInWithToken(ctx context.Context, token string) (*Identity, error)
	SignInWithFederated(ctx context.Context, assertion FederatedAssertion) (*Identity, error)
	SignOut(ctx context.Context) error

	// Subscribe registers fn to receive every identity change, including
	// nil on sign-out. The returned function removes the subscription.
	Subscribe(fn func(*Identity)) (unsubscribe func())
}
