package auth

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/trafylabs/academy-api/internal/domain/identity"
	"github.com/trafylabs/academy-api/internal/domain/profile"
	"github.com/trafylabs/academy-api/pkg/apperror"
	"github.com/trafylabs/academy-api/pkg/auth"
	"github.com/trafylabs/academy-api/pkg/logger"
	"github.com/trafylabs/academy-api/pkg/validation"
)

var tracer = otel.Tracer("auth_usecase")

type LoginUseCase struct {
	provider    identity.Provider
	profileRepo profile.Repository
	jwtSvc      *auth.JWTService
	logger      logger.Logger
}

func NewLoginUseCase(provider identity.Provider, profileRepo profile.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		provider:    provider,
		profileRepo: profileRepo,
		jwtSvc:      jwtSvc,
		logger:      log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	Identity    *identity.Identity
	AccessToken string
}

func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {

	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	if d := validation.Validate(validation.FieldEmail, input.Email); d != "" {
		return nil, apperror.NewValidationFailed(map[string]string{"email": "Invalid email address"})
	}
	if input.Password == "" {
		return nil, apperror.NewValidationFailed(map[string]string{"password": "Password is required"})
	}

	id, err := uc.provider.SignInWithPassword(ctx, input.Email, input.Password)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, apperror.NewUnauthorized("incorrect email or password", err)
		}
		return nil, err
	}

	uc.seedProfile(ctx, id)

	token, err := uc.jwtSvc.GenerateToken(id.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", id.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.String("user_id", id.ID.String()))
	return &LoginOutput{Identity: id, AccessToken: token}, nil
}

type FederatedLoginInput struct {
	Assertion identity.FederatedAssertion
}

func (uc *LoginUseCase) ExecuteFederated(ctx context.Context, input FederatedLoginInput) (*LoginOutput, error) {

	ctx, span := tracer.Start(ctx, "FederatedLogin")
	defer span.End()

	id, err := uc.provider.SignInWithFederated(ctx, input.Assertion)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.seedProfile(ctx, id)

	token, err := uc.jwtSvc.GenerateToken(id.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", id.ID.String()))
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	return &LoginOutput{Identity: id, AccessToken: token}, nil
}

// seedProfile lazily creates the profile record on first sign-in: uid,
// authentication email, and a first name derived from the email local part.
// An existing record is left untouched.
func (uc *LoginUseCase) seedProfile(ctx context.Context, id *identity.Identity) {
	_, err := uc.profileRepo.Get(ctx, id.ID)
	if err == nil {
		return
	}
	if !errors.Is(err, profile.ErrRecordNotFound) {
		uc.logger.Warn("Failed to check profile record on sign-in", zap.Error(err), zap.String("user_id", id.ID.String()))
		return
	}

	rec := &profile.Record{
		UID:       id.ID,
		Email:     id.Email,
		FirstName: id.DisplayName(),
	}
	if err := uc.profileRepo.Set(ctx, rec); err != nil {
		uc.logger.Warn("Failed to seed profile record", zap.Error(err), zap.String("user_id", id.ID.String()))
	}
}
