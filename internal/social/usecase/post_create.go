package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/pkg/storage"
	"github.com/peyvandhq/peyvand/internal/social/entity"
)

//nolint:gochecknoglobals // global for fast reuse
var postImageContentTypeExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var errPostImageTooLarge = errors.New("post image exceeds max size")

type PostCreateInput struct {
	Content          string
	Image            io.Reader
	ImageContentType string
}

type PostOutput struct {
	Post entity.PostView
}

func (s *Usecase) PostCreate(ctx context.Context, in PostCreateInput) (*PostOutput, error) {
	ctx, span := s.startSpan(ctx, "PostCreate")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(in.Content)
	if content == "" && in.Image == nil {
		return nil, goerror.NewInvalidInput(nil, "content", "a post needs content or an image")
	}
	if max := s.cfg.GetInt("modules.social.post_max_length"); len([]rune(content)) > max {
		return nil, goerror.NewInvalidInput(nil, "content", fmt.Sprintf("content must be at most %d characters", max))
	}

	var imageURL string
	if in.Image != nil {
		imageURL, err = s.uploadPostImage(ctx, clm.UserID, in)
		if err != nil {
			return nil, err
		}
	}

	post := entity.Post{
		ID:       s.uid.Generate(),
		UserID:   clm.UserID,
		Content:  content,
		ImageURL: imageURL,
	}
	if err := s.repoDB.CreatePost(ctx, post); err != nil {
		slog.ErrorContext(ctx, "failed to repo create post", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	view, err := s.repoDB.GetPostView(ctx, post.ID, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post view", "post_id", post.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PostOutput{Post: *view}, nil
}

func (s *Usecase) uploadPostImage(ctx context.Context, userID int64, in PostCreateInput) (string, error) {
	contentType := strings.ToLower(strings.TrimSpace(in.ImageContentType))
	ext, ok := postImageContentTypeExt[contentType]
	if !ok {
		return "", goerror.NewInvalidInput(nil, "image", "unsupported image content type")
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.social.post_bucket"))
	baseURL := strings.TrimSpace(s.cfg.GetString("modules.social.post_base_url"))
	key := fmt.Sprintf("%d/%s%s", userID, s.uuid.Generate(), ext)

	reader := &maxBytesReader{
		r:   in.Image,
		max: s.cfg.GetInt64("modules.social.post_image_max_size_bytes"),
	}
	_, err := s.storage.PutObject(ctx, bucket, key, reader, storage.PutOptions{
		Size:        -1,
		ContentType: contentType,
		Metadata:    map[string]string{"user_id": strconv.FormatInt(userID, 10)},
	})
	if err != nil {
		if errors.Is(err, errPostImageTooLarge) {
			return "", goerror.NewInvalidInput(errPostImageTooLarge)
		}
		slog.ErrorContext(ctx, "failed to upload post image", "user_id", userID, "error", err)
		return "", goerror.NewServer(err)
	}

	return baseURL + "/" + key, nil
}

type maxBytesReader struct {
	r     io.Reader
	max   int64
	read  int64
	buf   [1]byte
	ended bool
}

func (m *maxBytesReader) Read(p []byte) (int, error) {
	if m.read >= m.max {
		if m.ended {
			return 0, errPostImageTooLarge
		}

		n, err := m.r.Read(m.buf[:])
		if n > 0 {
			m.ended = true
			return 0, errPostImageTooLarge
		}
		if err == nil {
			m.ended = true
			return 0, errPostImageTooLarge
		}
		return 0, err
	}

	remaining := m.max - m.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := m.r.Read(p)
	m.read += int64(n)
	return n, err
}
