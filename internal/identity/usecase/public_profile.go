package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/peyvandhq/peyvand/internal/identity/entity"
	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/pkg/jwt"
)

type PublicProfileInput struct {
	UserID int64 `validate:"required,gt=0"`
}

type PublicProfileOutput struct {
	Profile entity.PublicProfile
}

func (s *Usecase) PublicProfile(ctx context.Context, in PublicProfileInput) (*PublicProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "PublicProfile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	profile, err := s.repoDB.GetPublicProfile(ctx, in.UserID, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get public profile", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PublicProfileOutput{Profile: *profile}, nil
}
