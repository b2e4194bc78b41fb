package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/social/entity"
)

type FollowInput struct {
	UserID int64 `validate:"required,gt=0"`
}

func (s *Usecase) Follow(ctx context.Context, in FollowInput) error {
	ctx, span := s.startSpan(ctx, "Follow")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if in.UserID == clm.UserID {
		return goerror.NewInvalidInput(nil, "user_id", "you cannot follow yourself")
	}

	exists, err := s.repoDB.UserExists(ctx, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check user", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}
	if !exists {
		return goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}

	if err := s.repoDB.CreateFollow(ctx, clm.UserID, in.UserID); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return goerror.NewBusiness("You are already following this user", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create follow", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) Unfollow(ctx context.Context, in FollowInput) error {
	ctx, span := s.startSpan(ctx, "Unfollow")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	removed, err := s.repoDB.DeleteFollow(ctx, clm.UserID, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete follow", "user_id", in.UserID, "error", err)
		return goerror.NewServer(err)
	}
	if !removed {
		return goerror.NewBusiness("You are not following this user", goerror.CodeNotFound)
	}

	return nil
}

type FollowListInput struct {
	UserID int64 `validate:"required,gt=0"`
	Page   int32
	Size   int32
}

type FollowListOutput struct {
	Users []entity.FollowUser
	Total int64
	Page  int32
	Size  int32
}

func (s *Usecase) Followers(ctx context.Context, in FollowListInput) (*FollowListOutput, error) {
	ctx, span := s.startSpan(ctx, "Followers")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	exists, err := s.repoDB.UserExists(ctx, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check user", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !exists {
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}

	page, size := normalizePage(in.Page, in.Size)
	users, total, err := s.repoDB.GetFollowers(ctx, in.UserID, clm.UserID, page, size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get followers", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &FollowListOutput{Users: users, Total: total, Page: page, Size: size}, nil
}

func (s *Usecase) Following(ctx context.Context, in FollowListInput) (*FollowListOutput, error) {
	ctx, span := s.startSpan(ctx, "Following")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	exists, err := s.repoDB.UserExists(ctx, in.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check user", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !exists {
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}

	page, size := normalizePage(in.Page, in.Size)
	users, total, err := s.repoDB.GetFollowing(ctx, in.UserID, clm.UserID, page, size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get following", "user_id", in.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &FollowListOutput{Users: users, Total: total, Page: page, Size: size}, nil
}

type FollowingIDsOutput struct {
	IDs []int64
}

// FollowingIDs returns every user the caller follows, without pagination.
// Clients use it to mark followed authors in locally cached lists.
func (s *Usecase) FollowingIDs(ctx context.Context) (*FollowingIDsOutput, error) {
	ctx, span := s.startSpan(ctx, "FollowingIDs")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := s.repoDB.GetFollowingIDs(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get following ids", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &FollowingIDsOutput{IDs: ids}, nil
}
