package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/peyvandhq/peyvand/internal/social/entity"
)

func (s *DB) UserExists(ctx context.Context, id int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UserExists")
	defer func() { s.endSpan(span, err) }()

	var exists bool
	err = s.conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}

func (s *DB) CreateFollow(ctx context.Context, followerID, followingID int64) (err error) {
	ctx, span := s.startSpan(ctx, "CreateFollow")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)`,
		followerID, followingID,
	)

	return s.mapError(err)
}

func (s *DB) DeleteFollow(ctx context.Context, followerID, followingID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "DeleteFollow")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

const followUserColumns = `u.id, u.name, u.avatar_url,
	EXISTS (SELECT 1 FROM follows v WHERE v.follower_id = $2 AND v.following_id = u.id)`

func (s *DB) GetFollowers(ctx context.Context, userID, viewerID int64, page, size int32) (_ []entity.FollowUser, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetFollowers")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT `+followUserColumns+`
		 FROM follows f JOIN users u ON u.id = f.follower_id
		 WHERE f.following_id = $1
		 ORDER BY f.created_at DESC
		 LIMIT $3 OFFSET $4`,
		userID, viewerID, size, (page-1)*size,
	)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	users, err := scanFollowUsers(rows)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	var total int64
	err = s.conn.QueryRow(ctx, `SELECT count(*) FROM follows WHERE following_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return users, total, nil
}

func (s *DB) GetFollowing(ctx context.Context, userID, viewerID int64, page, size int32) (_ []entity.FollowUser, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetFollowing")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT `+followUserColumns+`
		 FROM follows f JOIN users u ON u.id = f.following_id
		 WHERE f.follower_id = $1
		 ORDER BY f.created_at DESC
		 LIMIT $3 OFFSET $4`,
		userID, viewerID, size, (page-1)*size,
	)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	users, err := scanFollowUsers(rows)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	var total int64
	err = s.conn.QueryRow(ctx, `SELECT count(*) FROM follows WHERE follower_id = $1`, userID).Scan(&total)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return users, total, nil
}

func (s *DB) GetFollowingIDs(ctx context.Context, userID int64) (_ []int64, err error) {
	ctx, span := s.startSpan(ctx, "GetFollowingIDs")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT following_id FROM follows WHERE follower_id = $1 ORDER BY following_id ASC`,
		userID,
	)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			return nil, s.mapError(err)
		}

		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return ids, nil
}

func scanFollowUsers(rows pgx.Rows) ([]entity.FollowUser, error) {
	defer rows.Close()

	users := make([]entity.FollowUser, 0)
	for rows.Next() {
		var user entity.FollowUser
		if err := rows.Scan(&user.ID, &user.Name, &user.AvatarURL, &user.FollowedByViewer); err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	return users, rows.Err()
}
