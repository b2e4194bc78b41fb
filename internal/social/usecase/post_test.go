package usecase

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/social/entity"
)

func TestPostCreate(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	ctx := authContext(42)

	out, err := uc.PostCreate(ctx, PostCreateInput{Content: "  hello peyvand  "})
	if err != nil {
		t.Fatalf("PostCreate returned error: %v", err)
	}

	if out.Post.Content != "hello peyvand" {
		t.Fatalf("content = %q, want trimmed %q", out.Post.Content, "hello peyvand")
	}
	if out.Post.UserID != 42 {
		t.Fatalf("post owner = %d, want 42", out.Post.UserID)
	}
	if len(repo.posts) != 1 {
		t.Fatalf("stored posts = %d, want 1", len(repo.posts))
	}
}

func TestPostCreate_RequiresContentOrImage(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.PostCreate(authContext(42), PostCreateInput{Content: "   "})
	if err == nil {
		t.Fatal("expected an error for an empty post")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
		t.Fatalf("error = %v, want invalid input", err)
	}
}

func TestPostCreate_ContentTooLong(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.PostCreate(authContext(42), PostCreateInput{Content: strings.Repeat("x", 1001)})
	if err == nil {
		t.Fatal("expected an error for content over the limit")
	}
}

func TestPostCreate_WithImage(t *testing.T) {
	uc, repo, store := newTestUsecase(t)

	out, err := uc.PostCreate(authContext(42), PostCreateInput{
		Content:          "look",
		Image:            bytes.NewReader([]byte("fake-png-bytes")),
		ImageContentType: "image/png",
	})
	if err != nil {
		t.Fatalf("PostCreate returned error: %v", err)
	}

	if len(store.objects) != 1 {
		t.Fatalf("stored objects = %d, want 1", len(store.objects))
	}
	obj := store.objects[0]
	if obj.bucket != "posts" {
		t.Fatalf("bucket = %q, want posts", obj.bucket)
	}
	if !strings.HasSuffix(obj.key, ".png") {
		t.Fatalf("object key = %q, want .png suffix", obj.key)
	}

	wantURL := "https://cdn.example.com/posts/" + obj.key
	if out.Post.ImageURL != wantURL {
		t.Fatalf("image url = %q, want %q", out.Post.ImageURL, wantURL)
	}
	if len(repo.posts) != 1 {
		t.Fatalf("stored posts = %d, want 1", len(repo.posts))
	}
}

func TestPostCreate_UnsupportedImageType(t *testing.T) {
	uc, repo, store := newTestUsecase(t)

	_, err := uc.PostCreate(authContext(42), PostCreateInput{
		Image:            bytes.NewReader([]byte("GIF89a")),
		ImageContentType: "image/gif",
	})
	if err == nil {
		t.Fatal("expected an error for a gif upload")
	}
	if len(store.objects) != 0 || len(repo.posts) != 0 {
		t.Fatal("nothing should be stored after a rejected upload")
	}
}

func TestPostCreate_ImageTooLarge(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.PostCreate(authContext(42), PostCreateInput{
		Image:            bytes.NewReader(make([]byte, 2097152+1)),
		ImageContentType: "image/jpeg",
	})
	if err == nil {
		t.Fatal("expected an error for an oversized image")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
		t.Fatalf("error = %v, want invalid input", err)
	}
}

func TestPostUpdate_OwnerOnly(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.posts[100] = entity.Post{ID: 100, UserID: 42, Content: "original"}

	if _, err := uc.PostUpdate(authContext(7), PostUpdateInput{PostID: 100, Content: "hijack"}); err == nil {
		t.Fatal("expected an error when editing someone else's post")
	}

	out, err := uc.PostUpdate(authContext(42), PostUpdateInput{PostID: 100, Content: "edited"})
	if err != nil {
		t.Fatalf("PostUpdate returned error: %v", err)
	}
	if out.Post.Content != "edited" {
		t.Fatalf("content = %q, want edited", out.Post.Content)
	}
}

func TestPostUpdate_NotFound(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.PostUpdate(authContext(42), PostUpdateInput{PostID: 999, Content: "x"})
	if err == nil {
		t.Fatal("expected an error for a missing post")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestPostDelete_OwnerOnly(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.posts[100] = entity.Post{ID: 100, UserID: 42}

	if err := uc.PostDelete(authContext(7), PostDeleteInput{PostID: 100}); err == nil {
		t.Fatal("expected an error when deleting someone else's post")
	}
	if _, ok := repo.posts[100]; !ok {
		t.Fatal("post must survive a forbidden delete")
	}

	if err := uc.PostDelete(authContext(42), PostDeleteInput{PostID: 100}); err != nil {
		t.Fatalf("PostDelete returned error: %v", err)
	}
	if _, ok := repo.posts[100]; ok {
		t.Fatal("post should be gone after owner delete")
	}
}

func TestUserPosts_UnknownUser(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.UserPosts(authContext(42), UserPostsInput{UserID: 999})
	if err == nil {
		t.Fatal("expected an error for an unknown user")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestFeed_IncludesOwnAndFollowedPosts(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	ctx := authContext(42)

	repo.users[42] = true
	repo.users[7] = true
	repo.users[8] = true
	repo.follows[likeKey{targetID: 7, userID: 42}] = true

	if _, err := uc.PostCreate(ctx, PostCreateInput{Content: "mine"}); err != nil {
		t.Fatalf("PostCreate returned error: %v", err)
	}
	if _, err := uc.PostCreate(authContext(7), PostCreateInput{Content: "followed"}); err != nil {
		t.Fatalf("PostCreate returned error: %v", err)
	}
	if _, err := uc.PostCreate(authContext(8), PostCreateInput{Content: "stranger"}); err != nil {
		t.Fatalf("PostCreate returned error: %v", err)
	}

	out, err := uc.Feed(ctx, FeedInput{})
	if err != nil {
		t.Fatalf("Feed returned error: %v", err)
	}

	if len(out.Posts) != 2 {
		t.Fatalf("feed size = %d, want 2", len(out.Posts))
	}
	if out.Posts[0].Content != "followed" || out.Posts[1].Content != "mine" {
		t.Fatalf("feed order = [%q, %q], want newest first", out.Posts[0].Content, out.Posts[1].Content)
	}
}
