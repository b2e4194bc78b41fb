package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/peyvandhq/peyvand/internal/identity/entity"
	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/pkg/jwt"
)

const (
	searchDefaultPageSize int32 = 20
	searchMaxPageSize     int32 = 50
)

type UserSearchInput struct {
	Query string
	Page  int32
	Size  int32
}

type UserSearchOutput struct {
	Users []entity.Profile
	Total int64
	Page  int32
	Size  int32
}

func (s *Usecase) UserSearch(ctx context.Context, in UserSearchInput) (*UserSearchOutput, error) {
	ctx, span := s.startSpan(ctx, "UserSearch")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if in.Page < 1 {
		in.Page = 1
	}
	if in.Size < 1 {
		in.Size = searchDefaultPageSize
	}
	if in.Size > searchMaxPageSize {
		in.Size = searchMaxPageSize
	}

	query := strings.TrimSpace(in.Query)
	if query == "" {
		return &UserSearchOutput{Users: []entity.Profile{}, Page: in.Page, Size: in.Size}, nil
	}

	users, total, err := s.repoDB.SearchUsers(ctx, entity.UserSearchFilter{
		Query:    query,
		ViewerID: clm.UserID,
		Page:     in.Page,
		Size:     in.Size,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo search users", "query", query, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserSearchOutput{
		Users: users,
		Total: total,
		Page:  in.Page,
		Size:  in.Size,
	}, nil
}
