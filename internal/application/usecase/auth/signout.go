package auth

import (
	"context"

	"github.com/trafylabs/academy-api/internal/domain/identity"
	"github.com/trafylabs/academy-api/pkg/logger"
)

type SignOutUseCase struct {
	provider identity.Provider
	logger   logger.Logger
}

func NewSignOutUseCase(provider identity.Provider, log logger.Logger) *SignOutUseCase {
	return &SignOutUseCase{provider: provider, logger: log}
}

type SignOutOutput struct {
	// RedirectTo is where the client lands after sign-out. Navigation is
	// attempted even when the provider reports a failure, so the user is
	// never stranded on an account surface with a dead session.
	RedirectTo string
}

func (uc *SignOutUseCase) Execute(ctx context.Context) *SignOutOutput {
	if err := uc.provider.SignOut(ctx); err != nil {
		uc.logger.Error("Sign-out failed", err)
	}
	return &SignOutOutput{RedirectTo: "/login"}
}
