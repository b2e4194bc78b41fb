package usecase

import (
	"errors"
	"testing"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
)

func TestFollow(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.users[7] = true

	if err := uc.Follow(authContext(42), FollowInput{UserID: 7}); err != nil {
		t.Fatalf("Follow returned error: %v", err)
	}

	if !repo.follows[likeKey{targetID: 7, userID: 42}] {
		t.Fatal("follow edge not stored")
	}
}

func TestFollow_Self(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.users[42] = true

	err := uc.Follow(authContext(42), FollowInput{UserID: 42})
	if err == nil {
		t.Fatal("expected an error when following yourself")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
		t.Fatalf("error = %v, want invalid input", err)
	}
}

func TestFollow_UnknownUser(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	err := uc.Follow(authContext(42), FollowInput{UserID: 999})
	if err == nil {
		t.Fatal("expected an error for an unknown user")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestFollow_Duplicate(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.users[7] = true

	if err := uc.Follow(authContext(42), FollowInput{UserID: 7}); err != nil {
		t.Fatalf("Follow returned error: %v", err)
	}

	err := uc.Follow(authContext(42), FollowInput{UserID: 7})
	if err == nil {
		t.Fatal("expected an error for a duplicate follow")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeConflict {
		t.Fatalf("error = %v, want conflict", err)
	}
}

func TestUnfollow(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.follows[likeKey{targetID: 7, userID: 42}] = true

	if err := uc.Unfollow(authContext(42), FollowInput{UserID: 7}); err != nil {
		t.Fatalf("Unfollow returned error: %v", err)
	}

	if repo.follows[likeKey{targetID: 7, userID: 42}] {
		t.Fatal("follow edge should be gone")
	}
}

func TestUnfollow_NotFollowing(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.users[7] = true

	err := uc.Unfollow(authContext(42), FollowInput{UserID: 7})
	if err == nil {
		t.Fatal("expected an error when not following")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestFollowersAndFollowing(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.users[7] = true
	repo.users[42] = true
	repo.follows[likeKey{targetID: 7, userID: 42}] = true
	repo.follows[likeKey{targetID: 7, userID: 43}] = true
	repo.follows[likeKey{targetID: 43, userID: 99}] = true

	followers, err := uc.Followers(authContext(99), FollowListInput{UserID: 7})
	if err != nil {
		t.Fatalf("Followers returned error: %v", err)
	}
	if followers.Total != 2 {
		t.Fatalf("followers total = %d, want 2", followers.Total)
	}
	if followers.Users[0].ID != 42 || followers.Users[0].FollowedByViewer {
		t.Fatalf("user 42 = %+v, want not followed by viewer", followers.Users[0])
	}
	if followers.Users[1].ID != 43 || !followers.Users[1].FollowedByViewer {
		t.Fatalf("user 43 = %+v, want followed by viewer", followers.Users[1])
	}

	following, err := uc.Following(authContext(99), FollowListInput{UserID: 42})
	if err != nil {
		t.Fatalf("Following returned error: %v", err)
	}
	if following.Total != 1 || following.Users[0].ID != 7 {
		t.Fatalf("following = %+v, want exactly user 7", following.Users)
	}
}

func TestFollowingIDs(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.follows[likeKey{targetID: 7, userID: 42}] = true
	repo.follows[likeKey{targetID: 9, userID: 42}] = true
	repo.follows[likeKey{targetID: 42, userID: 9}] = true

	out, err := uc.FollowingIDs(authContext(42))
	if err != nil {
		t.Fatalf("FollowingIDs returned error: %v", err)
	}

	if len(out.IDs) != 2 || out.IDs[0] != 7 || out.IDs[1] != 9 {
		t.Fatalf("ids = %v, want [7 9]", out.IDs)
	}
}
