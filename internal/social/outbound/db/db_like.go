package db

import "context"

// LikePost reports whether a new like row was inserted. A duplicate like is
// absorbed by ON CONFLICT and reported as false.
func (s *DB) LikePost(ctx context.Context, postID, userID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "LikePost")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		postID, userID,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) UnlikePost(ctx context.Context, postID, userID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UnlikePost")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`,
		postID, userID,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) CountPostLikes(ctx context.Context, postID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountPostLikes")
	defer func() { s.endSpan(span, err) }()

	var count int64
	err = s.conn.QueryRow(ctx, `SELECT count(*) FROM post_likes WHERE post_id = $1`, postID).Scan(&count)
	if err != nil {
		return 0, s.mapError(err)
	}

	return count, nil
}

func (s *DB) LikeComment(ctx context.Context, commentID, userID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "LikeComment")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		commentID, userID,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) UnlikeComment(ctx context.Context, commentID, userID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UnlikeComment")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`,
		commentID, userID,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) CountCommentLikes(ctx context.Context, commentID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountCommentLikes")
	defer func() { s.endSpan(span, err) }()

	var count int64
	err = s.conn.QueryRow(ctx, `SELECT count(*) FROM comment_likes WHERE comment_id = $1`, commentID).Scan(&count)
	if err != nil {
		return 0, s.mapError(err)
	}

	return count, nil
}
