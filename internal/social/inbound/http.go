package inbound

import (
	"context"

	"github.com/peyvandhq/peyvand/internal/pkg/router"
	"github.com/peyvandhq/peyvand/internal/social/usecase"
)

type uc interface {
	PostCreate(ctx context.Context, in usecase.PostCreateInput) (*usecase.PostOutput, error)
	PostUpdate(ctx context.Context, in usecase.PostUpdateInput) (*usecase.PostOutput, error)
	PostDelete(ctx context.Context, in usecase.PostDeleteInput) error
	UserPosts(ctx context.Context, in usecase.UserPostsInput) (*usecase.PostListOutput, error)
	Feed(ctx context.Context, in usecase.FeedInput) (*usecase.PostListOutput, error)

	CommentCreate(ctx context.Context, in usecase.CommentCreateInput) (*usecase.CommentOutput, error)
	CommentList(ctx context.Context, in usecase.CommentListInput) (*usecase.CommentListOutput, error)
	CommentReplies(ctx context.Context, in usecase.CommentRepliesInput) (*usecase.CommentListOutput, error)

	PostLike(ctx context.Context, in usecase.LikeInput) (*usecase.LikeOutput, error)
	PostUnlike(ctx context.Context, in usecase.LikeInput) (*usecase.LikeOutput, error)
	CommentLike(ctx context.Context, in usecase.LikeInput) (*usecase.LikeOutput, error)
	CommentUnlike(ctx context.Context, in usecase.LikeInput) (*usecase.LikeOutput, error)

	Follow(ctx context.Context, in usecase.FollowInput) error
	Unfollow(ctx context.Context, in usecase.FollowInput) error
	Followers(ctx context.Context, in usecase.FollowListInput) (*usecase.FollowListOutput, error)
	Following(ctx context.Context, in usecase.FollowListInput) (*usecase.FollowListOutput, error)
	FollowingIDs(ctx context.Context) (*usecase.FollowingIDsOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Posts and timeline (need authenticated)
	r.POST("/api/v1/posts", end.PostCreate)
	r.PUT("/api/v1/posts/:id", end.PostUpdate)
	r.DELETE("/api/v1/posts/:id", end.PostDelete)
	r.GET("/api/v1/users/:id/posts", end.UserPosts)
	r.GET("/api/v1/feed", end.Feed)

	// Comments (need authenticated)
	r.POST("/api/v1/posts/:id/comments", end.CommentCreate)
	r.GET("/api/v1/posts/:id/comments", end.CommentList)
	r.GET("/api/v1/comments/:id/replies", end.CommentReplies)

	// Likes (need authenticated)
	r.POST("/api/v1/posts/:id/like", end.PostLike)
	r.DELETE("/api/v1/posts/:id/like", end.PostUnlike)
	r.POST("/api/v1/comments/:id/like", end.CommentLike)
	r.DELETE("/api/v1/comments/:id/like", end.CommentUnlike)

	// Follow graph (need authenticated)
	r.POST("/api/v1/users/:id/follow", end.Follow)
	r.DELETE("/api/v1/users/:id/follow", end.Unfollow)
	r.GET("/api/v1/users/:id/followers", end.Followers)
	r.GET("/api/v1/users/:id/following", end.Following)
	r.GET("/api/v1/profile/following-ids", end.FollowingIDs)
}
