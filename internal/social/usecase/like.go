package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
)

type LikeInput struct {
	TargetID int64 `validate:"required,gt=0"`
}

type LikeOutput struct {
	LikesCount int64
	Liked      bool
}

func (s *Usecase) PostLike(ctx context.Context, in LikeInput) (*LikeOutput, error) {
	ctx, span := s.startSpan(ctx, "PostLike")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetPostByID(ctx, in.TargetID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Post not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get post", "post_id", in.TargetID, "error", err)
		return nil, goerror.NewServer(err)
	}

	inserted, err := s.repoDB.LikePost(ctx, in.TargetID, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo like post", "post_id", in.TargetID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !inserted {
		return nil, goerror.NewBusiness("You already liked this post", goerror.CodeConflict)
	}

	count, err := s.repoDB.CountPostLikes(ctx, in.TargetID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count post likes", "post_id", in.TargetID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LikeOutput{LikesCount: count, Liked: true}, nil
}

func (s *Usecase) PostUnlike(ctx context.Context, in LikeInput) (*LikeOutput, error) {
	ctx, span := s.startSpan(ctx, "PostUnlike")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetPostByID(ctx, in.TargetID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Post not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get post", "post_id", in.TargetID, "error", err)
		return nil, goerror.NewServer(err)
	}

	removed, err := s.repoDB.UnlikePost(ctx, in.TargetID, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo unlike post", "post_id", in.TargetID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !removed {
		return nil, goerror.NewBusiness("You have not liked this post", goerror.CodeConflict)
	}

	count, err := s.repoDB.CountPostLikes(ctx, in.TargetID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count post likes", "post_id", in.TargetID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LikeOutput{LikesCount: count, Liked: false}, nil
}

func (s *Usecase) CommentLike(ctx context.Context, in LikeInput) (*LikeOutput, error) {
	ctx, span := s.startSpan(ctx, "CommentLike")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetCommentByID(ctx, in.TargetID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Comment not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get comment", "comment_id", in.TargetID, "error", err)
		return nil, goerror.NewServer(err)
	}

	inserted, err := s.repoDB.LikeComment(ctx, in.TargetID, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo like comment", "comment_id", in.TargetID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !inserted {
		return nil, goerror.NewBusiness("You already liked this comment", goerror.CodeConflict)
	}

	count, err := s.repoDB.CountCommentLikes(ctx, in.TargetID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count comment likes", "comment_id", in.TargetID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LikeOutput{LikesCount: count, Liked: true}, nil
}

func (s *Usecase) CommentUnlike(ctx context.Context, in LikeInput) (*LikeOutput, error) {
	ctx, span := s.startSpan(ctx, "CommentUnlike")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetCommentByID(ctx, in.TargetID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Comment not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get comment", "comment_id", in.TargetID, "error", err)
		return nil, goerror.NewServer(err)
	}

	removed, err := s.repoDB.UnlikeComment(ctx, in.TargetID, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo unlike comment", "comment_id", in.TargetID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !removed {
		return nil, goerror.NewBusiness("You have not liked this comment", goerror.CodeConflict)
	}

	count, err := s.repoDB.CountCommentLikes(ctx, in.TargetID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count comment likes", "comment_id", in.TargetID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LikeOutput{LikesCount: count, Liked: false}, nil
}
