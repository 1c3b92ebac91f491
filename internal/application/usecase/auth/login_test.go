package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/trafylabs/academy-api/internal/domain/identity"
	"github.com/trafylabs/academy-api/internal/domain/profile"
	"github.com/trafylabs/academy-api/pkg/apperror"
	"github.com/trafylabs/academy-api/pkg/auth"
	"github.com/trafylabs/academy-api/pkg/logger"
)

type loginProvider struct {
	bridgeProvider
	identity      *identity.Identity
	passwordCalls int
}

func (p *loginProvider) SignInWithPassword(_ context.Context, email, password string) (*identity.Identity, error) {
	p.passwordCalls++
	if p.identity == nil {
		return nil, identity.ErrInvalidCredentials
	}
	return p.identity, nil
}

type memProfileRepo struct {
	records map[uuid.UUID]*profile.Record
	sets    int
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{records: make(map[uuid.UUID]*profile.Record)}
}

func (r *memProfileRepo) Get(_ context.Context, uid uuid.UUID) (*profile.Record, error) {
	rec, ok := r.records[uid]
	if !ok {
		return nil, profile.ErrRecordNotFound
	}
	return rec, nil
}

func (r *memProfileRepo) Set(_ context.Context, rec *profile.Record) error {
	r.sets++
	r.records[rec.UID] = rec
	return nil
}

func (r *memProfileRepo) Update(context.Context, uuid.UUID, profile.Patch) error { return nil }

func newTestLoginUseCase(p identity.Provider, repo profile.Repository) *LoginUseCase {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	return NewLoginUseCase(p, repo, jwtSvc, logger.NewNop())
}

func TestLogin_RejectsInvalidEmailBeforeProvider(t *testing.T) {
	p := &loginProvider{}
	uc := newTestLoginUseCase(p, newMemProfileRepo())

	_, err := uc.Execute(context.Background(), LoginInput{Email: "not-an-email", Password: "x"})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "email")
	assert.Zero(t, p.passwordCalls)
}

func TestLogin_RequiresPassword(t *testing.T) {
	p := &loginProvider{}
	uc := newTestLoginUseCase(p, newMemProfileRepo())

	_, err := uc.Execute(context.Background(), LoginInput{Email: "jane@example.com"})

	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Fields, "password")
	assert.Zero(t, p.passwordCalls)
}

func TestLogin_SeedsProfileOnFirstSignIn(t *testing.T) {
	uid := uuid.New()
	p := &loginProvider{identity: &identity.Identity{ID: uid, Email: "jane.doe@example.com"}}
	repo := newMemProfileRepo()
	uc := newTestLoginUseCase(p, repo)

	output, err := uc.Execute(context.Background(), LoginInput{Email: "jane.doe@example.com", Password: "secret"})
	assert.NoError(t, err)
	assert.NotEmpty(t, output.AccessToken)

	seeded := repo.records[uid]
	if assert.NotNil(t, seeded) {
		assert.Equal(t, "jane.doe@example.com", seeded.Email)
		// First name falls back to the email local part.
		assert.Equal(t, "jane.doe", seeded.FirstName)
	}
}

func TestLogin_ExistingProfileUntouched(t *testing.T) {
	uid := uuid.New()
	p := &loginProvider{identity: &identity.Identity{ID: uid, Email: "jane@example.com"}}
	repo := newMemProfileRepo()
	repo.records[uid] = &profile.Record{UID: uid, FirstName: "Janet"}
	uc := newTestLoginUseCase(p, repo)

	_, err := uc.Execute(context.Background(), LoginInput{Email: "jane@example.com", Password: "secret"})
	assert.NoError(t, err)

	assert.Zero(t, repo.sets)
	assert.Equal(t, "Janet", repo.records[uid].FirstName)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	uc := newTestLoginUseCase(&loginProvider{}, newMemProfileRepo())

	_, err := uc.Execute(context.Background(), LoginInput{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
