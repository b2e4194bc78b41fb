package inbound

import (
	"encoding/json"
	"time"

	"github.com/peyvandhq/peyvand/internal/social/entity"
)

type AuthorResponse struct {
	ID        int64  `json:"id,string"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type PostResponse struct {
	ID                   int64          `json:"id,string"`
	Author               AuthorResponse `json:"author"`
	Content              string         `json:"content"`
	ImageURL             string         `json:"image_url,omitempty"`
	LikesCount           int64          `json:"likes_count"`
	CommentsCount        int64          `json:"comments_count"`
	IsLikedByCurrentUser bool           `json:"is_liked_by_current_user"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

func newPostResponse(view entity.PostView) PostResponse {
	return PostResponse{
		ID: view.ID,
		Author: AuthorResponse{
			ID:        view.Author.ID,
			Name:      view.Author.Name,
			AvatarURL: view.Author.AvatarURL,
		},
		Content:              view.Content,
		ImageURL:             view.ImageURL,
		LikesCount:           view.LikesCount,
		CommentsCount:        view.CommentsCount,
		IsLikedByCurrentUser: view.IsLikedByViewer,
		CreatedAt:            view.CreatedAt,
		UpdatedAt:            view.UpdatedAt,
	}
}

type PostCreateRequest struct {
	Content string `json:"content"`
}

type PostUpdateRequest struct {
	Content string `json:"content"`
}

type PostListResponse struct {
	Posts []PostResponse `json:"-"`
	Total int64          `json:"-"`
	Page  int32          `json:"-"`
	Size  int32          `json:"-"`
}

func (r PostListResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Posts)
}

func (r PostListResponse) Meta() any {
	return map[string]any{"total": r.Total, "page": r.Page, "size": r.Size}
}

type CommentResponse struct {
	ID                   int64          `json:"id,string"`
	PostID               int64          `json:"post_id,string"`
	ParentID             *int64         `json:"parent_id,string,omitempty"`
	Author               AuthorResponse `json:"author"`
	Body                 string         `json:"body"`
	LikesCount           int64          `json:"likes_count"`
	RepliesCount         int64          `json:"replies_count"`
	IsLikedByCurrentUser bool           `json:"is_liked_by_current_user"`
	CreatedAt            time.Time      `json:"created_at"`
}

func newCommentResponse(view entity.CommentView) CommentResponse {
	return CommentResponse{
		ID:       view.ID,
		PostID:   view.PostID,
		ParentID: view.ParentID,
		Author: AuthorResponse{
			ID:        view.Author.ID,
			Name:      view.Author.Name,
			AvatarURL: view.Author.AvatarURL,
		},
		Body:                 view.Body,
		LikesCount:           view.LikesCount,
		RepliesCount:         view.RepliesCount,
		IsLikedByCurrentUser: view.IsLikedByViewer,
		CreatedAt:            view.CreatedAt,
	}
}

type CommentCreateRequest struct {
	Body     string `json:"body"`
	ParentID *int64 `json:"parent_id,string,omitempty"`
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"-"`
	Total    int64             `json:"-"`
	Page     int32             `json:"-"`
	Size     int32             `json:"-"`
}

func (r CommentListResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Comments)
}

func (r CommentListResponse) Meta() any {
	return map[string]any{"total": r.Total, "page": r.Page, "size": r.Size}
}

type LikeResponse struct {
	LikesCount int64 `json:"likes_count"`
	Liked      bool  `json:"liked"`
}

type FollowUserResponse struct {
	ID                      int64  `json:"id,string"`
	Name                    string `json:"name"`
	AvatarURL               string `json:"avatar_url"`
	IsFollowedByCurrentUser bool   `json:"is_followed_by_current_user"`
}

type FollowListResponse struct {
	Users []FollowUserResponse `json:"-"`
	Total int64                `json:"-"`
	Page  int32                `json:"-"`
	Size  int32                `json:"-"`
}

func (r FollowListResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Users)
}

func (r FollowListResponse) Meta() any {
	return map[string]any{"total": r.Total, "page": r.Page, "size": r.Size}
}

type FollowingIDsResponse struct {
	IDs []int64 `json:"following_ids"`
}
