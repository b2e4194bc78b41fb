package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/peyvandhq/peyvand/internal/social/entity"
)

const commentViewColumns = `c.id, c.post_id, c.user_id, c.parent_id, c.body, c.created_at,
	u.id, u.name, u.avatar_url,
	(SELECT count(*) FROM comment_likes cl WHERE cl.comment_id = c.id),
	(SELECT count(*) FROM comments r WHERE r.parent_id = c.id),
	EXISTS (SELECT 1 FROM comment_likes cl WHERE cl.comment_id = c.id AND cl.user_id = $2)`

func (s *DB) CreateComment(ctx context.Context, comment entity.Comment) (err error) {
	ctx, span := s.startSpan(ctx, "CreateComment")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO comments (id, post_id, user_id, parent_id, body) VALUES ($1, $2, $3, $4, $5)`,
		comment.ID, comment.PostID, comment.UserID, comment.ParentID, comment.Body,
	)

	return s.mapError(err)
}

func (s *DB) GetCommentByID(ctx context.Context, id int64) (_ *entity.Comment, err error) {
	ctx, span := s.startSpan(ctx, "GetCommentByID")
	defer func() { s.endSpan(span, err) }()

	var comment entity.Comment
	err = s.conn.QueryRow(ctx,
		`SELECT id, post_id, user_id, parent_id, body, created_at FROM comments WHERE id = $1`,
		id,
	).Scan(&comment.ID, &comment.PostID, &comment.UserID, &comment.ParentID, &comment.Body, &comment.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &comment, nil
}

func (s *DB) GetCommentView(ctx context.Context, commentID, viewerID int64) (_ *entity.CommentView, err error) {
	ctx, span := s.startSpan(ctx, "GetCommentView")
	defer func() { s.endSpan(span, err) }()

	var view entity.CommentView
	err = s.conn.QueryRow(ctx,
		`SELECT `+commentViewColumns+`
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.id = $1`,
		commentID, viewerID,
	).Scan(
		&view.ID, &view.PostID, &view.UserID, &view.ParentID, &view.Body, &view.CreatedAt,
		&view.Author.ID, &view.Author.Name, &view.Author.AvatarURL,
		&view.LikesCount, &view.RepliesCount, &view.IsLikedByViewer,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &view, nil
}

// GetPostComments lists a post's top-level comments, newest first.
func (s *DB) GetPostComments(ctx context.Context, postID, viewerID int64, page, size int32) (_ []entity.CommentView, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetPostComments")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT `+commentViewColumns+`
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.post_id = $1 AND c.parent_id IS NULL
		 ORDER BY c.created_at DESC, c.id DESC
		 LIMIT $3 OFFSET $4`,
		postID, viewerID, size, (page-1)*size,
	)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	views, err := scanCommentViews(rows)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	var total int64
	err = s.conn.QueryRow(ctx,
		`SELECT count(*) FROM comments WHERE post_id = $1 AND parent_id IS NULL`,
		postID,
	).Scan(&total)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return views, total, nil
}

// GetCommentReplies lists a comment's replies, oldest first.
func (s *DB) GetCommentReplies(ctx context.Context, commentID, viewerID int64, page, size int32) (_ []entity.CommentView, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetCommentReplies")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT `+commentViewColumns+`
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.parent_id = $1
		 ORDER BY c.created_at ASC, c.id ASC
		 LIMIT $3 OFFSET $4`,
		commentID, viewerID, size, (page-1)*size,
	)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	views, err := scanCommentViews(rows)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	var total int64
	err = s.conn.QueryRow(ctx, `SELECT count(*) FROM comments WHERE parent_id = $1`, commentID).Scan(&total)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return views, total, nil
}

func scanCommentViews(rows pgx.Rows) ([]entity.CommentView, error) {
	defer rows.Close()

	views := make([]entity.CommentView, 0)
	for rows.Next() {
		var view entity.CommentView
		if err := rows.Scan(
			&view.ID, &view.PostID, &view.UserID, &view.ParentID, &view.Body, &view.CreatedAt,
			&view.Author.ID, &view.Author.Name, &view.Author.AvatarURL,
			&view.LikesCount, &view.RepliesCount, &view.IsLikedByViewer,
		); err != nil {
			return nil, err
		}

		views = append(views, view)
	}

	return views, rows.Err()
}
