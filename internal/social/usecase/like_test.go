package usecase

import (
	"errors"
	"testing"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/social/entity"
)

func TestPostLike(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.posts[100] = entity.Post{ID: 100, UserID: 7}

	out, err := uc.PostLike(authContext(42), LikeInput{TargetID: 100})
	if err != nil {
		t.Fatalf("PostLike returned error: %v", err)
	}

	if !out.Liked || out.LikesCount != 1 {
		t.Fatalf("like state = %+v, want liked with count 1", out)
	}
}

func TestPostLike_Duplicate(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.posts[100] = entity.Post{ID: 100, UserID: 7}

	if _, err := uc.PostLike(authContext(42), LikeInput{TargetID: 100}); err != nil {
		t.Fatalf("PostLike returned error: %v", err)
	}

	_, err := uc.PostLike(authContext(42), LikeInput{TargetID: 100})
	if err == nil {
		t.Fatal("expected an error for a duplicate like")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeConflict {
		t.Fatalf("error = %v, want conflict", err)
	}
}

func TestPostUnlike(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.posts[100] = entity.Post{ID: 100, UserID: 7}
	repo.postLikes[likeKey{targetID: 100, userID: 42}] = true

	out, err := uc.PostUnlike(authContext(42), LikeInput{TargetID: 100})
	if err != nil {
		t.Fatalf("PostUnlike returned error: %v", err)
	}

	if out.Liked || out.LikesCount != 0 {
		t.Fatalf("like state = %+v, want unliked with count 0", out)
	}
}

func TestPostUnlike_NotLiked(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.posts[100] = entity.Post{ID: 100, UserID: 7}

	_, err := uc.PostUnlike(authContext(42), LikeInput{TargetID: 100})
	if err == nil {
		t.Fatal("expected an error when unliking a post that was never liked")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeConflict {
		t.Fatalf("error = %v, want conflict", err)
	}
}

func TestPostLike_PostNotFound(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.PostLike(authContext(42), LikeInput{TargetID: 999})
	if err == nil {
		t.Fatal("expected an error for a missing post")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestCommentLikeRoundTrip(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	ctx := authContext(42)
	repo.comments[500] = entity.Comment{ID: 500, PostID: 100, UserID: 7, Body: "x"}

	liked, err := uc.CommentLike(ctx, LikeInput{TargetID: 500})
	if err != nil {
		t.Fatalf("CommentLike returned error: %v", err)
	}
	if !liked.Liked || liked.LikesCount != 1 {
		t.Fatalf("like state = %+v, want liked with count 1", liked)
	}

	if _, err := uc.CommentLike(ctx, LikeInput{TargetID: 500}); err == nil {
		t.Fatal("expected an error for a duplicate comment like")
	}

	unliked, err := uc.CommentUnlike(ctx, LikeInput{TargetID: 500})
	if err != nil {
		t.Fatalf("CommentUnlike returned error: %v", err)
	}
	if unliked.Liked || unliked.LikesCount != 0 {
		t.Fatalf("like state = %+v, want unliked with count 0", unliked)
	}
}
