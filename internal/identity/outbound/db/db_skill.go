package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/peyvandhq/peyvand/internal/identity/entity"
)

func (s *DB) GetSkills(ctx context.Context) (_ []entity.Skill, err error) {
	ctx, span := s.startSpan(ctx, "GetSkills")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `SELECT id, name FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	skills := make([]entity.Skill, 0)
	for rows.Next() {
		var skill entity.Skill
		if err = rows.Scan(&skill.ID, &skill.Name); err != nil {
			return nil, s.mapError(err)
		}

		skills = append(skills, skill)
	}

	return skills, s.mapError(rows.Err())
}

func (s *DB) CountSkillsByIDs(ctx context.Context, ids []int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountSkillsByIDs")
	defer func() { s.endSpan(span, err) }()

	var count int64
	err = s.conn.QueryRow(ctx, `SELECT count(*) FROM skills WHERE id = ANY($1)`, ids).Scan(&count)
	if err != nil {
		return 0, s.mapError(err)
	}

	return count, nil
}

// ReplaceUserSkills swaps the whole skill set in one transaction so readers
// never observe a half-applied update.
func (s *DB) ReplaceUserSkills(ctx context.Context, userID int64, skillIDs []int64) (err error) {
	ctx, span := s.startSpan(ctx, "ReplaceUserSkills")
	defer func() { s.endSpan(span, err) }()

	err = s.mapError(s.inTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, userID); err != nil {
			return err
		}

		if len(skillIDs) == 0 {
			return nil
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO user_skills (user_id, skill_id) SELECT $1, unnest($2::bigint[])`,
			userID, skillIDs,
		)

		return err
	}))

	return err
}
