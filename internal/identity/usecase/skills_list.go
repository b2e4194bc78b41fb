package usecase

import (
	"context"
	"log/slog"

	"github.com/peyvandhq/peyvand/internal/identity/entity"
	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
)

type SkillsListOutput struct {
	Skills []entity.Skill
}

func (s *Usecase) SkillsList(ctx context.Context) (*SkillsListOutput, error) {
	ctx, span := s.startSpan(ctx, "SkillsList")
	defer span.End()

	skills, err := s.repoDB.GetSkills(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get skills", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SkillsListOutput{Skills: skills}, nil
}
