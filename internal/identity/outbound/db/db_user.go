package db

import (
	"context"

	"github.com/peyvandhq/peyvand/internal/identity/entity"
)

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	var user entity.User
	err = s.conn.QueryRow(ctx,
		`SELECT id, phone, name, bio, avatar_url, created_at, updated_at FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Phone, &user.Name, &user.Bio, &user.AvatarURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

// UpsertUserByPhone resolves a phone to its user row, creating the row on
// first login. ON CONFLICT keeps concurrent first logins from ever producing
// two identities for one phone.
func (s *DB) UpsertUserByPhone(ctx context.Context, in entity.UpsertUser) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "UpsertUserByPhone")
	defer func() { s.endSpan(span, err) }()

	var user entity.User
	err = s.conn.QueryRow(ctx,
		`INSERT INTO users (id, phone) VALUES ($1, $2)
		 ON CONFLICT (phone) DO UPDATE SET updated_at = now()
		 RETURNING id, phone, name, bio, avatar_url, created_at, updated_at`,
		in.ID, in.Phone,
	).Scan(&user.ID, &user.Phone, &user.Name, &user.Bio, &user.AvatarURL, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

func (s *DB) UpdateUserProfile(ctx context.Context, id int64, name, bio string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserProfile")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`UPDATE users SET name = $2, bio = $3, updated_at = now() WHERE id = $1`,
		id, name, bio,
	)

	return s.mapError(err)
}

func (s *DB) UpdateUserAvatar(ctx context.Context, id int64, avatarURL string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserAvatar")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`UPDATE users SET avatar_url = $2, updated_at = now() WHERE id = $1`,
		id, avatarURL,
	)

	return s.mapError(err)
}

func (s *DB) GetProfile(ctx context.Context, userID int64) (_ *entity.Profile, err error) {
	ctx, span := s.startSpan(ctx, "GetProfile")
	defer func() { s.endSpan(span, err) }()

	var p entity.Profile
	err = s.conn.QueryRow(ctx,
		`SELECT u.id, u.phone, u.name, u.bio, u.avatar_url, u.created_at, u.updated_at,
		        (SELECT count(*) FROM follows f WHERE f.following_id = u.id),
		        (SELECT count(*) FROM follows f WHERE f.follower_id = u.id)
		 FROM users u WHERE u.id = $1`,
		userID,
	).Scan(
		&p.User.ID, &p.User.Phone, &p.User.Name, &p.User.Bio, &p.User.AvatarURL,
		&p.User.CreatedAt, &p.User.UpdatedAt,
		&p.FollowersCount, &p.FollowingCount,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	skillsByUser, err := s.getSkillsByUserIDs(ctx, []int64{userID})
	if err != nil {
		return nil, s.mapError(err)
	}
	p.Skills = skillsByUser[userID]

	return &p, nil
}

func (s *DB) GetPublicProfile(ctx context.Context, userID, viewerID int64) (_ *entity.PublicProfile, err error) {
	ctx, span := s.startSpan(ctx, "GetPublicProfile")
	defer func() { s.endSpan(span, err) }()

	var p entity.PublicProfile
	err = s.conn.QueryRow(ctx,
		`SELECT u.id, u.phone, u.name, u.bio, u.avatar_url, u.created_at, u.updated_at,
		        (SELECT count(*) FROM follows f WHERE f.following_id = u.id),
		        (SELECT count(*) FROM follows f WHERE f.follower_id = u.id),
		        EXISTS (SELECT 1 FROM follows f WHERE f.follower_id = $2 AND f.following_id = u.id)
		 FROM users u WHERE u.id = $1`,
		userID, viewerID,
	).Scan(
		&p.User.ID, &p.User.Phone, &p.User.Name, &p.User.Bio, &p.User.AvatarURL,
		&p.User.CreatedAt, &p.User.UpdatedAt,
		&p.FollowersCount, &p.FollowingCount,
		&p.IsFollowedByViewer,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	skillsByUser, err := s.getSkillsByUserIDs(ctx, []int64{userID})
	if err != nil {
		return nil, s.mapError(err)
	}
	p.Skills = skillsByUser[userID]

	return &p, nil
}

func (s *DB) SearchUsers(ctx context.Context, filter entity.UserSearchFilter) (_ []entity.Profile, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "SearchUsers")
	defer func() { s.endSpan(span, err) }()

	const match = `u.id <> $2 AND (
		u.name ILIKE '%' || $1 || '%'
		OR EXISTS (
			SELECT 1 FROM user_skills us
			JOIN skills sk ON sk.id = us.skill_id
			WHERE us.user_id = u.id AND sk.name ILIKE '%' || $1 || '%'
		)
	)`

	rows, err := s.conn.Query(ctx,
		`SELECT u.id, u.phone, u.name, u.bio, u.avatar_url, u.created_at, u.updated_at,
		        (SELECT count(*) FROM follows f WHERE f.following_id = u.id),
		        (SELECT count(*) FROM follows f WHERE f.follower_id = u.id)
		 FROM users u WHERE `+match+`
		 ORDER BY u.name ASC, u.id ASC
		 LIMIT $3 OFFSET $4`,
		filter.Query, filter.ViewerID, filter.Size, (filter.Page-1)*filter.Size,
	)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	profiles := make([]entity.Profile, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var p entity.Profile
		if err = rows.Scan(
			&p.User.ID, &p.User.Phone, &p.User.Name, &p.User.Bio, &p.User.AvatarURL,
			&p.User.CreatedAt, &p.User.UpdatedAt,
			&p.FollowersCount, &p.FollowingCount,
		); err != nil {
			return nil, 0, s.mapError(err)
		}

		profiles = append(profiles, p)
		ids = append(ids, p.User.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	skillsByUser, err := s.getSkillsByUserIDs(ctx, ids)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	for i := range profiles {
		profiles[i].Skills = skillsByUser[profiles[i].User.ID]
	}

	var total int64
	err = s.conn.QueryRow(ctx,
		`SELECT count(*) FROM users u WHERE `+match,
		filter.Query, filter.ViewerID,
	).Scan(&total)
	if err != nil {
		return nil, 0, s.mapError(err)
	}

	return profiles, total, nil
}

func (s *DB) getSkillsByUserIDs(ctx context.Context, userIDs []int64) (map[int64][]entity.Skill, error) {
	out := make(map[int64][]entity.Skill, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := s.conn.Query(ctx,
		`SELECT us.user_id, sk.id, sk.name
		 FROM user_skills us
		 JOIN skills sk ON sk.id = us.skill_id
		 WHERE us.user_id = ANY($1)
		 ORDER BY sk.name ASC`,
		userIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var skill entity.Skill
		if err := rows.Scan(&userID, &skill.ID, &skill.Name); err != nil {
			return nil, err
		}

		out[userID] = append(out[userID], skill)
	}

	return out, rows.Err()
}
