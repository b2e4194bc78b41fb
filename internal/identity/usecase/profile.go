package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/peyvandhq/peyvand/internal/identity/entity"
	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/pkg/jwt"
)

type ProfileOutput struct {
	Profile entity.Profile
}

func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	profile, err := s.repoDB.GetProfile(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "authenticated user no longer exists", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get profile", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{Profile: *profile}, nil
}
