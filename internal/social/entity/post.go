package entity

import "time"

type Post struct {
	ID        int64
	UserID    int64
	Content   string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Author is the slice of a user profile embedded in posts and comments.
type Author struct {
	ID        int64
	Name      string
	AvatarURL string
}

// PostView is a post decorated with the relational data every post response
// carries.
type PostView struct {
	Post
	Author          Author
	LikesCount      int64
	CommentsCount   int64
	IsLikedByViewer bool
}

type Comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	ParentID  *int64
	Body      string
	CreatedAt time.Time
}

type CommentView struct {
	Comment
	Author          Author
	LikesCount      int64
	RepliesCount    int64
	IsLikedByViewer bool
}

// FollowUser is a row in a followers or following list. FollowsViewer and
// FollowedByViewer drive the follow-back markers in the UI.
type FollowUser struct {
	Author
	FollowedByViewer bool
}
