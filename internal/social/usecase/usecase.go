package usecase

import (
	"context"

	"github.com/peyvandhq/peyvand/internal/pkg/clock"
	"github.com/peyvandhq/peyvand/internal/pkg/config"
	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/pkg/goroutine"
	"github.com/peyvandhq/peyvand/internal/pkg/instrument"
	"github.com/peyvandhq/peyvand/internal/pkg/jwt"
	"github.com/peyvandhq/peyvand/internal/pkg/storage"
	"github.com/peyvandhq/peyvand/internal/pkg/uid"
	"github.com/peyvandhq/peyvand/internal/pkg/validator"
	"github.com/peyvandhq/peyvand/internal/social/entity"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	CreatePost(ctx context.Context, post entity.Post) error
	GetPostByID(ctx context.Context, id int64) (*entity.Post, error)
	UpdatePostContent(ctx context.Context, id int64, content string) error
	DeletePost(ctx context.Context, id int64) error
	GetPostView(ctx context.Context, postID, viewerID int64) (*entity.PostView, error)
	GetUserPosts(ctx context.Context, userID, viewerID int64, page, size int32) ([]entity.PostView, int64, error)
	GetFeed(ctx context.Context, viewerID int64, page, size int32) ([]entity.PostView, int64, error)

	CreateComment(ctx context.Context, comment entity.Comment) error
	GetCommentByID(ctx context.Context, id int64) (*entity.Comment, error)
	GetCommentView(ctx context.Context, commentID, viewerID int64) (*entity.CommentView, error)
	GetPostComments(ctx context.Context, postID, viewerID int64, page, size int32) ([]entity.CommentView, int64, error)
	GetCommentReplies(ctx context.Context, commentID, viewerID int64, page, size int32) ([]entity.CommentView, int64, error)

	LikePost(ctx context.Context, postID, userID int64) (bool, error)
	UnlikePost(ctx context.Context, postID, userID int64) (bool, error)
	CountPostLikes(ctx context.Context, postID int64) (int64, error)
	LikeComment(ctx context.Context, commentID, userID int64) (bool, error)
	UnlikeComment(ctx context.Context, commentID, userID int64) (bool, error)
	CountCommentLikes(ctx context.Context, commentID int64) (int64, error)

	UserExists(ctx context.Context, id int64) (bool, error)
	CreateFollow(ctx context.Context, followerID, followingID int64) error
	DeleteFollow(ctx context.Context, followerID, followingID int64) (bool, error)
	GetFollowers(ctx context.Context, userID, viewerID int64, page, size int32) ([]entity.FollowUser, int64, error)
	GetFollowing(ctx context.Context, userID, viewerID int64, page, size int32) ([]entity.FollowUser, int64, error)
	GetFollowingIDs(ctx context.Context, userID int64) ([]int64, error)
}

type Usecase struct {
	repoDB    repoDB
	validator validator.Validator
	cfg       config.Config
	storage   storage.Storage
	uid       uid.NumberID
	uuid      uid.StringID
	clock     clock.Clocker
	ins       instrument.Instrumentation
	goroutine *goroutine.Manager
}

type Dependency struct {
	RepoDB     repoDB
	Validator  validator.Validator
	Config     config.Config
	Storage    storage.Storage
	UID        uid.NumberID
	UUID       uid.StringID
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
	Goroutine  *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		validator: dep.Validator,
		cfg:       dep.Config,
		storage:   dep.Storage,
		uid:       dep.UID,
		uuid:      dep.UUID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
		goroutine: dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("social.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

const (
	listDefaultPageSize int32 = 20
	listMaxPageSize     int32 = 50
)

func normalizePage(page, size int32) (int32, int32) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = listDefaultPageSize
	}
	if size > listMaxPageSize {
		size = listMaxPageSize
	}

	return page, size
}
