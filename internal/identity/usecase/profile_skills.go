package usecase

import (
	"context"
	"log/slog"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/pkg/jwt"
	"github.com/samber/lo"
)

type ProfileSkillsInput struct {
	SkillIDs []int64 `validate:"max=30,dive,gt=0"`
}

func (s *Usecase) ProfileSkills(ctx context.Context, in ProfileSkillsInput) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "ProfileSkills")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	ids := lo.Uniq(in.SkillIDs)
	if len(ids) > 0 {
		count, err := s.repoDB.CountSkillsByIDs(ctx, ids)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo count skills", "user_id", clm.UserID, "error", err)
			return nil, goerror.NewServer(err)
		}

		if count != int64(len(ids)) {
			return nil, goerror.NewInvalidInput(nil, "skill_ids", "one or more skills do not exist")
		}
	}

	if err := s.repoDB.ReplaceUserSkills(ctx, clm.UserID, ids); err != nil {
		slog.ErrorContext(ctx, "failed to repo replace user skills", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	profile, err := s.repoDB.GetProfile(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get profile", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{Profile: *profile}, nil
}
