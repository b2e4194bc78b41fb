package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/peyvandhq/peyvand/internal/social/entity"
)

const postViewColumns = `p.id, p.user_id, p.content, p.image_url, p.created_at, p.updated_at,
	u.id, u.name, u.avatar_url,
	(SELECT count(*) FROM post_likes pl WHERE pl.post_id = p.id),
	(SELECT count(*) FROM comments c WHERE c.post_id = p.id),
	EXISTS (SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id = $2)`

func (s *DB) CreatePost(ctx context.Context, post entity.Post) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePost")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO posts (id, user_id, content, image_url) VALUES ($1, $2, $3, $4)`,
		post.ID, post.UserID, post.Content, post.ImageURL,
	)

	return s.mapError(err)
}

func (s *DB) GetPostByID(ctx context.Context, id int64) (_ *entity.Post, err error) {
	ctx, span := s.startSpan(ctx, "GetPostByID")
	defer func() { s.endSpan(span, err) }()

	var post entity.Post
	err = s.conn.QueryRow(ctx,
		`SELECT id, user_id, content, image_url, created_at, updated_at FROM posts WHERE id = $1`,
		id,
	).Scan(&post.ID, &post.UserID, &post.Content, &post.ImageURL, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &post, nil
}

func (s *DB) UpdatePostContent(ctx context.Context, id int64, content string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePostContent")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`UPDATE posts SET content = $2, updated_at = now() WHERE id = $1`,
		id, content,
	)

	return s.mapError(err)
}

func (s *DB) DeletePost(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeletePost")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)

	return s.mapError(err)
}

func (s *DB) GetPostView(ctx context.Context, postID, viewerID int64) (_ *entity.PostView, err error) {
	ctx, span := s.startSpan(ctx, "GetPostView")
	defer func() { s.endSpan(span, err) }()

	var view entity.PostView
	err = s.conn.QueryRow(ctx,
		`SELECT `+postViewColumns+`
		 FROM posts p JOIN users u ON u.id = p.user_id
		 WHERE p.id = $1`,
		postID, viewerID,
	).Scan(
		&view.ID, &view.UserID, &view.Content, &view.ImageURL, &view.CreatedAt, &view.UpdatedAt,
		&view.Author.ID, &view.Author.Name, &view.Author.AvatarURL,
		&view.LikesCount, &view.CommentsCount, &view.IsLikedByViewer,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &view, nil
}

func (s *DB) GetUserPosts(ctx context.Context, userID, viewerID int64, page, size int32) (_ []entity.PostView, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetUserPosts")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT `+postViewColumns+`
		 FROM posts p JOIN users u ON u.id = p.user_id
		 WHERE p.user_id = $1
		 ORDER BY p.created_at DESC, p.id DESC
		 LIMIT $3 OFFSET $4`,
		userID, viewerID, size, (page-1)*size,
	)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	views, err := scanPostViews(rows)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	var total int64
	err = s.conn.QueryRow(ctx, `SELECT count(*) FROM posts WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return views, total, nil
}

// GetFeed lists the viewer's own posts plus posts by everyone they follow,
// newest first.
func (s *DB) GetFeed(ctx context.Context, viewerID int64, page, size int32) (_ []entity.PostView, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetFeed")
	defer func() { s.endSpan(span, err) }()

	const scope = `p.user_id = $1 OR p.user_id IN (
		SELECT following_id FROM follows WHERE follower_id = $1
	)`

	rows, err := s.conn.Query(ctx,
		`SELECT `+feedViewColumns+`
		 FROM posts p JOIN users u ON u.id = p.user_id
		 WHERE `+scope+`
		 ORDER BY p.created_at DESC, p.id DESC
		 LIMIT $2 OFFSET $3`,
		viewerID, size, (page-1)*size,
	)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	views, err := scanPostViews(rows)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	var total int64
	err = s.conn.QueryRow(ctx, `SELECT count(*) FROM posts p WHERE `+scope, viewerID).Scan(&total)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return views, total, nil
}

// feedViewColumns matches postViewColumns but the viewer is $1 because the
// feed query has no separate target user parameter.
const feedViewColumns = `p.id, p.user_id, p.content, p.image_url, p.created_at, p.updated_at,
	u.id, u.name, u.avatar_url,
	(SELECT count(*) FROM post_likes pl WHERE pl.post_id = p.id),
	(SELECT count(*) FROM comments c WHERE c.post_id = p.id),
	EXISTS (SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id = $1)`

func scanPostViews(rows pgx.Rows) ([]entity.PostView, error) {
	defer rows.Close()

	views := make([]entity.PostView, 0)
	for rows.Next() {
		var view entity.PostView
		if err := rows.Scan(
			&view.ID, &view.UserID, &view.Content, &view.ImageURL, &view.CreatedAt, &view.UpdatedAt,
			&view.Author.ID, &view.Author.Name, &view.Author.AvatarURL,
			&view.LikesCount, &view.CommentsCount, &view.IsLikedByViewer,
		); err != nil {
			return nil, err
		}

		views = append(views, view)
	}

	return views, rows.Err()
}
