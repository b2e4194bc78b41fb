package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
)

type PostUpdateInput struct {
	PostID  int64
	Content string
}

func (s *Usecase) PostUpdate(ctx context.Context, in PostUpdateInput) (*PostOutput, error) {
	ctx, span := s.startSpan(ctx, "PostUpdate")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, goerror.NewInvalidInput(nil, "content", "content is required")
	}
	if max := s.cfg.GetInt("modules.social.post_max_length"); len([]rune(content)) > max {
		return nil, goerror.NewInvalidInput(nil, "content", fmt.Sprintf("content must be at most %d characters", max))
	}

	post, err := s.repoDB.GetPostByID(ctx, in.PostID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Post not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post", "post_id", in.PostID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if post.UserID != clm.UserID {
		slog.WarnContext(ctx, "post update denied for non-owner", "post_id", in.PostID, "user_id", clm.UserID)
		return nil, goerror.NewBusiness("You can only edit your own posts", goerror.CodeForbidden)
	}

	if err := s.repoDB.UpdatePostContent(ctx, in.PostID, content); err != nil {
		slog.ErrorContext(ctx, "failed to repo update post", "post_id", in.PostID, "error", err)
		return nil, goerror.NewServer(err)
	}

	view, err := s.repoDB.GetPostView(ctx, in.PostID, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post view", "post_id", in.PostID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PostOutput{Post: *view}, nil
}
