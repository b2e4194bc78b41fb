package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/pkg/jwt"
)

type ProfileUpdateInput struct {
	Name string `validate:"required,max=255"`
	Bio  string `validate:"max=1000"`
}

func (s *Usecase) ProfileUpdate(ctx context.Context, in ProfileUpdateInput) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "ProfileUpdate")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Bio = strings.TrimSpace(in.Bio)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.UpdateUserProfile(ctx, clm.UserID, in.Name, in.Bio); err != nil {
		slog.ErrorContext(ctx, "failed to repo update user profile", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	profile, err := s.repoDB.GetProfile(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get profile", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{Profile: *profile}, nil
}
