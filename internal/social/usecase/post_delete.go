package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
)

type PostDeleteInput struct {
	PostID int64
}

func (s *Usecase) PostDelete(ctx context.Context, in PostDeleteInput) error {
	ctx, span := s.startSpan(ctx, "PostDelete")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	post, err := s.repoDB.GetPostByID(ctx, in.PostID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Post not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post", "post_id", in.PostID, "error", err)
		return goerror.NewServer(err)
	}

	if post.UserID != clm.UserID {
		slog.WarnContext(ctx, "post delete denied for non-owner", "post_id", in.PostID, "user_id", clm.UserID)
		return goerror.NewBusiness("You can only delete your own posts", goerror.CodeForbidden)
	}

	if err := s.repoDB.DeletePost(ctx, in.PostID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete post", "post_id", in.PostID, "error", err)
		return goerror.NewServer(err)
	}

	s.cleanupPostImage(ctx, post.ID, post.ImageURL)

	return nil
}

// cleanupPostImage removes the post's image object in the background. The
// row is already gone, so failures only leak an orphan file.
func (s *Usecase) cleanupPostImage(ctx context.Context, postID int64, imageURL string) {
	baseURL := strings.TrimSpace(s.cfg.GetString("modules.social.post_base_url"))
	key, ok := strings.CutPrefix(imageURL, baseURL+"/")
	if !ok || key == "" {
		return
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.social.post_bucket"))
	s.goroutine.Go(context.WithoutCancel(ctx), func(gctx context.Context) error {
		if err := s.storage.DeleteObject(gctx, bucket, key); err != nil {
			slog.WarnContext(gctx, "failed to delete post image object", "post_id", postID, "key", key, "error", err)
		}
		return nil
	})
}
