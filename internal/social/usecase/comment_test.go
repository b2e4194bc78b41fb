package usecase

import (
	"errors"
	"strings"
	"testing"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/social/entity"
)

func TestCommentCreate(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.posts[100] = entity.Post{ID: 100, UserID: 7}

	out, err := uc.CommentCreate(authContext(42), CommentCreateInput{PostID: 100, Body: " nice post "})
	if err != nil {
		t.Fatalf("CommentCreate returned error: %v", err)
	}

	if out.Comment.Body != "nice post" {
		t.Fatalf("body = %q, want trimmed %q", out.Comment.Body, "nice post")
	}
	if out.Comment.UserID != 42 {
		t.Fatalf("comment owner = %d, want 42", out.Comment.UserID)
	}
	if out.Comment.ParentID != nil {
		t.Fatal("a top-level comment must have no parent")
	}
}

func TestCommentCreate_PostNotFound(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.CommentCreate(authContext(42), CommentCreateInput{PostID: 999, Body: "hello"})
	if err == nil {
		t.Fatal("expected an error for a missing post")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestCommentCreate_BodyTooLong(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.posts[100] = entity.Post{ID: 100, UserID: 7}

	_, err := uc.CommentCreate(authContext(42), CommentCreateInput{
		PostID: 100,
		Body:   strings.Repeat("x", 2001),
	})
	if err == nil {
		t.Fatal("expected an error for a body over the limit")
	}
}

func TestCommentCreate_Reply(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.posts[100] = entity.Post{ID: 100, UserID: 7}

	parent, err := uc.CommentCreate(authContext(42), CommentCreateInput{PostID: 100, Body: "parent"})
	if err != nil {
		t.Fatalf("CommentCreate returned error: %v", err)
	}

	reply, err := uc.CommentCreate(authContext(7), CommentCreateInput{
		PostID:   100,
		ParentID: &parent.Comment.ID,
		Body:     "reply",
	})
	if err != nil {
		t.Fatalf("CommentCreate returned error: %v", err)
	}
	if reply.Comment.ParentID == nil || *reply.Comment.ParentID != parent.Comment.ID {
		t.Fatal("reply must carry its parent id")
	}
}

func TestCommentCreate_ParentFromAnotherPost(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	repo.posts[100] = entity.Post{ID: 100, UserID: 7}
	repo.posts[200] = entity.Post{ID: 200, UserID: 7}
	repo.comments[500] = entity.Comment{ID: 500, PostID: 200, UserID: 7, Body: "elsewhere"}

	parentID := int64(500)
	_, err := uc.CommentCreate(authContext(42), CommentCreateInput{
		PostID:   100,
		ParentID: &parentID,
		Body:     "orphan reply",
	})
	if err == nil {
		t.Fatal("expected an error for a cross-post parent")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
		t.Fatalf("error = %v, want invalid input", err)
	}
}

func TestCommentList_TopLevelNewestFirst(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	ctx := authContext(42)
	repo.posts[100] = entity.Post{ID: 100, UserID: 7}

	first, err := uc.CommentCreate(ctx, CommentCreateInput{PostID: 100, Body: "first"})
	if err != nil {
		t.Fatalf("CommentCreate returned error: %v", err)
	}
	if _, err := uc.CommentCreate(ctx, CommentCreateInput{PostID: 100, Body: "second"}); err != nil {
		t.Fatalf("CommentCreate returned error: %v", err)
	}
	if _, err := uc.CommentCreate(ctx, CommentCreateInput{
		PostID:   100,
		ParentID: &first.Comment.ID,
		Body:     "a reply",
	}); err != nil {
		t.Fatalf("CommentCreate returned error: %v", err)
	}

	out, err := uc.CommentList(ctx, CommentListInput{PostID: 100})
	if err != nil {
		t.Fatalf("CommentList returned error: %v", err)
	}

	if len(out.Comments) != 2 {
		t.Fatalf("top-level comments = %d, want 2", len(out.Comments))
	}
	if out.Comments[0].Body != "second" || out.Comments[1].Body != "first" {
		t.Fatalf("order = [%q, %q], want newest first", out.Comments[0].Body, out.Comments[1].Body)
	}
}

func TestCommentReplies_OldestFirst(t *testing.T) {
	uc, repo, _ := newTestUsecase(t)
	ctx := authContext(42)
	repo.posts[100] = entity.Post{ID: 100, UserID: 7}

	parent, err := uc.CommentCreate(ctx, CommentCreateInput{PostID: 100, Body: "parent"})
	if err != nil {
		t.Fatalf("CommentCreate returned error: %v", err)
	}
	for _, body := range []string{"reply one", "reply two"} {
		if _, err := uc.CommentCreate(ctx, CommentCreateInput{
			PostID:   100,
			ParentID: &parent.Comment.ID,
			Body:     body,
		}); err != nil {
			t.Fatalf("CommentCreate returned error: %v", err)
		}
	}

	out, err := uc.CommentReplies(ctx, CommentRepliesInput{CommentID: parent.Comment.ID})
	if err != nil {
		t.Fatalf("CommentReplies returned error: %v", err)
	}

	if len(out.Comments) != 2 {
		t.Fatalf("replies = %d, want 2", len(out.Comments))
	}
	if out.Comments[0].Body != "reply one" || out.Comments[1].Body != "reply two" {
		t.Fatalf("order = [%q, %q], want oldest first", out.Comments[0].Body, out.Comments[1].Body)
	}
}
