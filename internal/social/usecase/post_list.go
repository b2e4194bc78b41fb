package usecase

import (
	"context"
	"log/slog"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/social/entity"
)

type UserPostsInput struct {
	UserID int64
	Page   int32
	Size   int32
}

type PostListOutput struct {
	Posts []entity.PostView
	Total int64
	Page  int32
	Size  int32
}

func (s *Usecase) UserPosts(ctx context.Context, in UserPostsInput) (*PostListOutput, error) {
	ctx, span := s.startSpan(ctx, "UserPosts")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	exists, err := s.repoDB.UserExists(ctx, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check user exists", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !exists {
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}

	page, size := normalizePage(in.Page, in.Size)
	posts, total, err := s.repoDB.GetUserPosts(ctx, in.UserID, clm.UserID, page, size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user posts", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PostListOutput{Posts: posts, Total: total, Page: page, Size: size}, nil
}

type FeedInput struct {
	Page int32
	Size int32
}

// Feed returns the home timeline: the viewer's own posts plus posts from
// everyone they follow, newest first.
func (s *Usecase) Feed(ctx context.Context, in FeedInput) (*PostListOutput, error) {
	ctx, span := s.startSpan(ctx, "Feed")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	page, size := normalizePage(in.Page, in.Size)
	posts, total, err := s.repoDB.GetFeed(ctx, clm.UserID, page, size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get feed", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PostListOutput{Posts: posts, Total: total, Page: page, Size: size}, nil
}
