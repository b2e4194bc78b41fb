package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/peyvandhq/peyvand/internal/pkg/clock"
	"github.com/peyvandhq/peyvand/internal/pkg/config"
	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/pkg/goroutine"
	"github.com/peyvandhq/peyvand/internal/pkg/instrument"
	"github.com/peyvandhq/peyvand/internal/pkg/jwt"
	"github.com/peyvandhq/peyvand/internal/pkg/storage"
	"github.com/peyvandhq/peyvand/internal/pkg/validator"
	"github.com/peyvandhq/peyvand/internal/social/entity"
)

var errBoom = errors.New("boom")

const testConfigYAML = `
modules:
  social:
    post_max_length: 1000
    post_bucket: posts
    post_base_url: https://cdn.example.com/posts
    post_image_max_size_bytes: 2097152
`

type likeKey struct {
	targetID int64
	userID   int64
}

// fakeRepo is an in-memory repoDB covering posts, comments, likes and
// follows. IDs are assigned by the caller, matching the real schema.
type fakeRepo struct {
	users        map[int64]bool
	posts        map[int64]entity.Post
	comments     map[int64]entity.Comment
	postLikes    map[likeKey]bool
	commentLikes map[likeKey]bool
	follows      map[likeKey]bool
	nextErr      error
	seq          int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        map[int64]bool{},
		posts:        map[int64]entity.Post{},
		comments:     map[int64]entity.Comment{},
		postLikes:    map[likeKey]bool{},
		commentLikes: map[likeKey]bool{},
		follows:      map[likeKey]bool{},
	}
}

func (f *fakeRepo) takeErr() error {
	err := f.nextErr
	f.nextErr = nil
	return err
}

func (f *fakeRepo) CreatePost(_ context.Context, post entity.Post) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	f.seq++
	post.CreatedAt = time.Unix(f.seq, 0)
	f.posts[post.ID] = post
	return nil
}

func (f *fakeRepo) GetPostByID(_ context.Context, id int64) (*entity.Post, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	post, ok := f.posts[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &post, nil
}

func (f *fakeRepo) UpdatePostContent(_ context.Context, id int64, content string) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	post := f.posts[id]
	post.Content = content
	f.posts[id] = post
	return nil
}

func (f *fakeRepo) DeletePost(_ context.Context, id int64) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeRepo) GetPostView(_ context.Context, postID, viewerID int64) (*entity.PostView, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	post, ok := f.posts[postID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return f.postView(post, viewerID), nil
}

func (f *fakeRepo) postView(post entity.Post, viewerID int64) *entity.PostView {
	view := entity.PostView{Post: post, Author: entity.Author{ID: post.UserID}}
	for key := range f.postLikes {
		if key.targetID == post.ID {
			view.LikesCount++
			if key.userID == viewerID {
				view.IsLikedByViewer = true
			}
		}
	}
	for _, c := range f.comments {
		if c.PostID == post.ID {
			view.CommentsCount++
		}
	}
	return &view
}

func (f *fakeRepo) GetUserPosts(_ context.Context, userID, viewerID int64, page, size int32) ([]entity.PostView, int64, error) {
	if err := f.takeErr(); err != nil {
		return nil, 0, err
	}
	views := make([]entity.PostView, 0)
	for _, post := range f.posts {
		if post.UserID == userID {
			views = append(views, *f.postView(post, viewerID))
		}
	}
	sortPostViews(views)
	return pagePostViews(views, page, size)
}

func (f *fakeRepo) GetFeed(_ context.Context, viewerID int64, page, size int32) ([]entity.PostView, int64, error) {
	if err := f.takeErr(); err != nil {
		return nil, 0, err
	}
	views := make([]entity.PostView, 0)
	for _, post := range f.posts {
		if post.UserID == viewerID || f.follows[likeKey{targetID: post.UserID, userID: viewerID}] {
			views = append(views, *f.postView(post, viewerID))
		}
	}
	sortPostViews(views)
	return pagePostViews(views, page, size)
}

func sortPostViews(views []entity.PostView) {
	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
}

func pagePostViews(views []entity.PostView, page, size int32) ([]entity.PostView, int64, error) {
	total := int64(len(views))
	from := int((page - 1) * size)
	if from >= len(views) {
		return []entity.PostView{}, total, nil
	}
	to := from + int(size)
	if to > len(views) {
		to = len(views)
	}
	return views[from:to], total, nil
}

func (f *fakeRepo) CreateComment(_ context.Context, comment entity.Comment) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	f.seq++
	comment.CreatedAt = time.Unix(f.seq, 0)
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeRepo) GetCommentByID(_ context.Context, id int64) (*entity.Comment, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	comment, ok := f.comments[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &comment, nil
}

func (f *fakeRepo) GetCommentView(_ context.Context, commentID, viewerID int64) (*entity.CommentView, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	comment, ok := f.comments[commentID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return f.commentView(comment, viewerID), nil
}

func (f *fakeRepo) commentView(comment entity.Comment, viewerID int64) *entity.CommentView {
	view := entity.CommentView{Comment: comment, Author: entity.Author{ID: comment.UserID}}
	for key := range f.commentLikes {
		if key.targetID == comment.ID {
			view.LikesCount++
			if key.userID == viewerID {
				view.IsLikedByViewer = true
			}
		}
	}
	for _, c := range f.comments {
		if c.ParentID != nil && *c.ParentID == comment.ID {
			view.RepliesCount++
		}
	}
	return &view
}

func (f *fakeRepo) GetPostComments(_ context.Context, postID, viewerID int64, _, _ int32) ([]entity.CommentView, int64, error) {
	if err := f.takeErr(); err != nil {
		return nil, 0, err
	}
	views := make([]entity.CommentView, 0)
	for _, comment := range f.comments {
		if comment.PostID == postID && comment.ParentID == nil {
			views = append(views, *f.commentView(comment, viewerID))
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].CreatedAt.After(views[j].CreatedAt) })
	return views, int64(len(views)), nil
}

func (f *fakeRepo) GetCommentReplies(_ context.Context, commentID, viewerID int64, _, _ int32) ([]entity.CommentView, int64, error) {
	if err := f.takeErr(); err != nil {
		return nil, 0, err
	}
	views := make([]entity.CommentView, 0)
	for _, comment := range f.comments {
		if comment.ParentID != nil && *comment.ParentID == commentID {
			views = append(views, *f.commentView(comment, viewerID))
		}
	}
	sort.Slice(views, func(i, j int) bool { return views[i].CreatedAt.Before(views[j].CreatedAt) })
	return views, int64(len(views)), nil
}

func (f *fakeRepo) LikePost(_ context.Context, postID, userID int64) (bool, error) {
	if err := f.takeErr(); err != nil {
		return false, err
	}
	key := likeKey{targetID: postID, userID: userID}
	if f.postLikes[key] {
		return false, nil
	}
	f.postLikes[key] = true
	return true, nil
}

func (f *fakeRepo) UnlikePost(_ context.Context, postID, userID int64) (bool, error) {
	if err := f.takeErr(); err != nil {
		return false, err
	}
	key := likeKey{targetID: postID, userID: userID}
	if !f.postLikes[key] {
		return false, nil
	}
	delete(f.postLikes, key)
	return true, nil
}

func (f *fakeRepo) CountPostLikes(_ context.Context, postID int64) (int64, error) {
	if err := f.takeErr(); err != nil {
		return 0, err
	}
	var count int64
	for key := range f.postLikes {
		if key.targetID == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) LikeComment(_ context.Context, commentID, userID int64) (bool, error) {
	if err := f.takeErr(); err != nil {
		return false, err
	}
	key := likeKey{targetID: commentID, userID: userID}
	if f.commentLikes[key] {
		return false, nil
	}
	f.commentLikes[key] = true
	return true, nil
}

func (f *fakeRepo) UnlikeComment(_ context.Context, commentID, userID int64) (bool, error) {
	if err := f.takeErr(); err != nil {
		return false, err
	}
	key := likeKey{targetID: commentID, userID: userID}
	if !f.commentLikes[key] {
		return false, nil
	}
	delete(f.commentLikes, key)
	return true, nil
}

func (f *fakeRepo) CountCommentLikes(_ context.Context, commentID int64) (int64, error) {
	if err := f.takeErr(); err != nil {
		return 0, err
	}
	var count int64
	for key := range f.commentLikes {
		if key.targetID == commentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) UserExists(_ context.Context, id int64) (bool, error) {
	if err := f.takeErr(); err != nil {
		return false, err
	}
	return f.users[id], nil
}

// follows is keyed {targetID: followingID, userID: followerID}.
func (f *fakeRepo) CreateFollow(_ context.Context, followerID, followingID int64) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	key := likeKey{targetID: followingID, userID: followerID}
	if f.follows[key] {
		return goerror.ErrConflict
	}
	f.follows[key] = true
	return nil
}

func (f *fakeRepo) DeleteFollow(_ context.Context, followerID, followingID int64) (bool, error) {
	if err := f.takeErr(); err != nil {
		return false, err
	}
	key := likeKey{targetID: followingID, userID: followerID}
	if !f.follows[key] {
		return false, nil
	}
	delete(f.follows, key)
	return true, nil
}

func (f *fakeRepo) GetFollowers(_ context.Context, userID, viewerID int64, _, _ int32) ([]entity.FollowUser, int64, error) {
	if err := f.takeErr(); err != nil {
		return nil, 0, err
	}
	users := make([]entity.FollowUser, 0)
	for key := range f.follows {
		if key.targetID == userID {
			users = append(users, entity.FollowUser{
				Author:           entity.Author{ID: key.userID},
				FollowedByViewer: f.follows[likeKey{targetID: key.userID, userID: viewerID}],
			})
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, int64(len(users)), nil
}

func (f *fakeRepo) GetFollowing(_ context.Context, userID, viewerID int64, _, _ int32) ([]entity.FollowUser, int64, error) {
	if err := f.takeErr(); err != nil {
		return nil, 0, err
	}
	users := make([]entity.FollowUser, 0)
	for key := range f.follows {
		if key.userID == userID {
			users = append(users, entity.FollowUser{
				Author:           entity.Author{ID: key.targetID},
				FollowedByViewer: f.follows[likeKey{targetID: key.targetID, userID: viewerID}],
			})
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, int64(len(users)), nil
}

func (f *fakeRepo) GetFollowingIDs(_ context.Context, userID int64) ([]int64, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	ids := make([]int64, 0)
	for key := range f.follows {
		if key.userID == userID {
			ids = append(ids, key.targetID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type storedObject struct {
	bucket      string
	key         string
	contentType string
	size        int64
}

// fakeStorage records uploads and deletions. PutObject drains the reader so
// size-limit readers are exercised.
type fakeStorage struct {
	objects []storedObject
	deleted []string
	putErr  error
}

func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, r io.Reader, opts storage.PutOptions) (storage.ObjectInfo, error) {
	if f.putErr != nil {
		return storage.ObjectInfo{}, f.putErr
	}
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return storage.ObjectInfo{}, err
	}
	f.objects = append(f.objects, storedObject{bucket: bucket, key: key, contentType: opts.ContentType, size: n})
	return storage.ObjectInfo{Bucket: bucket, Key: key, Size: n, ContentType: opts.ContentType}, nil
}

func (f *fakeStorage) GetObject(context.Context, string, string) (io.ReadCloser, storage.ObjectInfo, error) {
	return nil, storage.ObjectInfo{}, errors.New("unused")
}

func (f *fakeStorage) StatObject(context.Context, string, string) (storage.ObjectInfo, error) {
	return storage.ObjectInfo{}, errors.New("unused")
}

func (f *fakeStorage) DeleteObject(_ context.Context, _, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) ListObjects(context.Context, string, string, storage.ListOptions) ([]storage.ObjectInfo, error) {
	return nil, errors.New("unused")
}

func (f *fakeStorage) PresignGet(context.Context, string, string, time.Duration) (string, error) {
	return "", errors.New("unused")
}

func (f *fakeStorage) PresignPut(context.Context, string, string, storage.PutOptions, time.Duration) (string, error) {
	return "", errors.New("unused")
}

func (f *fakeStorage) Close() error { return nil }

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++
	return s.next
}

type fixedStringID struct{ id string }

func (f fixedStringID) Generate() string { return f.id }

func newTestUsecase(t *testing.T) (*Usecase, *fakeRepo, *fakeStorage) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	repo := newFakeRepo()
	store := &fakeStorage{}

	uc := New(Dependency{
		RepoDB:     repo,
		Validator:  v10,
		Config:     cfg,
		Storage:    store,
		UID:        &seqNumberID{next: 9000},
		UUID:       fixedStringID{id: "00000000-0000-7000-8000-000000000002"},
		Clock:      clock.Static{T: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)},
		Instrument: instrument.NewNoop(),
		Goroutine:  goroutine.NewManager(4),
	})

	return uc, repo, store
}

func authContext(uid int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: uid, UserPhone: "+989123456789"})
}
