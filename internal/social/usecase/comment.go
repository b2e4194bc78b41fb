package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/social/entity"
)

type CommentCreateInput struct {
	PostID   int64
	ParentID *int64
	Body     string `validate:"required,max=2000"`
}

type CommentOutput struct {
	Comment entity.CommentView
}

func (s *Usecase) CommentCreate(ctx context.Context, in CommentCreateInput) (*CommentOutput, error) {
	ctx, span := s.startSpan(ctx, "CommentCreate")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	in.Body = strings.TrimSpace(in.Body)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if _, err := s.repoDB.GetPostByID(ctx, in.PostID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Post not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get post", "post_id", in.PostID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if in.ParentID != nil {
		parent, err := s.repoDB.GetCommentByID(ctx, *in.ParentID)
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewInvalidInput(nil, "parent_id", "parent comment does not exist")
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo get parent comment", "comment_id", *in.ParentID, "error", err)
			return nil, goerror.NewServer(err)
		}

		if parent.PostID != in.PostID {
			return nil, goerror.NewInvalidInput(nil, "parent_id", "parent comment belongs to another post")
		}
	}

	comment := entity.Comment{
		ID:       s.uid.Generate(),
		PostID:   in.PostID,
		UserID:   clm.UserID,
		ParentID: in.ParentID,
		Body:     in.Body,
	}
	if err := s.repoDB.CreateComment(ctx, comment); err != nil {
		slog.ErrorContext(ctx, "failed to repo create comment", "post_id", in.PostID, "error", err)
		return nil, goerror.NewServer(err)
	}

	view, err := s.repoDB.GetCommentView(ctx, comment.ID, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get comment view", "comment_id", comment.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CommentOutput{Comment: *view}, nil
}

type CommentListInput struct {
	PostID int64
	Page   int32
	Size   int32
}

type CommentListOutput struct {
	Comments []entity.CommentView
	Total    int64
	Page     int32
	Size     int32
}

// CommentList returns the post's top-level comments, newest first.
func (s *Usecase) CommentList(ctx context.Context, in CommentListInput) (*CommentListOutput, error) {
	ctx, span := s.startSpan(ctx, "CommentList")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.repoDB.GetPostByID(ctx, in.PostID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Post not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get post", "post_id", in.PostID, "error", err)
		return nil, goerror.NewServer(err)
	}

	page, size := normalizePage(in.Page, in.Size)
	comments, total, err := s.repoDB.GetPostComments(ctx, in.PostID, clm.UserID, page, size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post comments", "post_id", in.PostID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CommentListOutput{Comments: comments, Total: total, Page: page, Size: size}, nil
}

type CommentRepliesInput struct {
	CommentID int64
	Page      int32
	Size      int32
}

// CommentReplies returns a comment's replies, oldest first so threads read
// top to bottom.
func (s *Usecase) CommentReplies(ctx context.Context, in CommentRepliesInput) (*CommentListOutput, error) {
	ctx, span := s.startSpan(ctx, "CommentReplies")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.repoDB.GetCommentByID(ctx, in.CommentID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Comment not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get comment", "comment_id", in.CommentID, "error", err)
		return nil, goerror.NewServer(err)
	}

	page, size := normalizePage(in.Page, in.Size)
	replies, total, err := s.repoDB.GetCommentReplies(ctx, in.CommentID, clm.UserID, page, size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get comment replies", "comment_id", in.CommentID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CommentListOutput{Comments: replies, Total: total, Page: page, Size: size}, nil
}
