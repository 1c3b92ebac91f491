package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/trafylabs/academy-api/internal/domain/identity"
)

var ErrRecordNotFound = errors.New("profile record not found")

// Record is the user-editable profile document keyed by identity id. Email
// mirrors the identity's authentication email and is never edited directly.
type Record struct {
	UID           uuid.UUID `json:"uid"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Country       string    `json:"country"`
	ProfilePicURL string    `json:"profile_pic_url"`
}

// DisplayFirstName falls back to the email local part when no explicit
// first name has been saved.
func (r *Record) DisplayFirstName() string {
	if r.FirstName != "" {
		return r.FirstName
	}
	return identity.LocalPart(r.Email)
}

// Patch is a partial update: nil fields are left untouched by Update.
type Patch struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Phone         *string
	Country       *string
	ProfilePicURL *string
}

// IsEmpty reports whether the patch would touch nothing.
func (p Patch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.Phone == nil && p.Country == nil && p.ProfilePicURL == nil
}

// Repository is the structured-data store contract: Get returns
// ErrRecordNotFound when no record exists, Set writes a whole record, and
// Update merges only the fields present in the patch.
type Repository interface {
	Get(ctx context.Context, uid uuid.UUID) (*Record, error)
	Set(ctx context.Context, record *Record) error
	Update(ctx context.Context, uid uuid.UUID, patch Patch) error
}
