package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/peyvandhq/peyvand/internal/identity/entity"
)

// ReplaceOtp removes every previous code for the phone and stores the new
// one, so at most one code is ever live per phone.
func (s *DB) ReplaceOtp(ctx context.Context, otp entity.Otp) (err error) {
	ctx, span := s.startSpan(ctx, "ReplaceOtp")
	defer func() { s.endSpan(span, err) }()

	err = s.mapError(s.inTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM otps WHERE phone = $1`, otp.Phone); err != nil {
			return err
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO otps (phone, code_hash, expires_at) VALUES ($1, $2, $3)`,
			otp.Phone, otp.CodeHash, otp.ExpiresAt,
		)

		return err
	}))

	return err
}

// ConsumeOtp deletes the row matching phone and hash only while it is still
// live. The single conditional delete makes check and consume atomic, so a
// code can never be redeemed twice.
func (s *DB) ConsumeOtp(ctx context.Context, phone, codeHash string, now time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeOtp")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`DELETE FROM otps WHERE phone = $1 AND code_hash = $2 AND expires_at > $3`,
		phone, codeHash, now,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

// ConsumeExpiredOtp deletes a matching row whose validity window has passed,
// distinguishing an expired code from one that never existed.
func (s *DB) ConsumeExpiredOtp(ctx context.Context, phone, codeHash string, now time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumeExpiredOtp")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`DELETE FROM otps WHERE phone = $1 AND code_hash = $2 AND expires_at <= $3`,
		phone, codeHash, now,
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}
