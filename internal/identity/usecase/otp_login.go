package usecase

import (
	"context"
	"log/slog"

	"github.com/peyvandhq/peyvand/internal/identity/entity"
	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/pkg/phone"
)

type LoginWithOtpInput struct {
	PhoneNumber string `validate:"required,irmobile"`
	Otp         string `validate:"required,numeric"`
}

type LoginWithOtpOutput struct {
	AccessToken string
	Profile     entity.Profile
}

func (s *Usecase) LoginWithOtp(ctx context.Context, in LoginWithOtpInput) (*LoginWithOtpOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginWithOtp")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if len(in.Otp) != s.cfg.GetInt("modules.identity.otp_length") {
		return nil, goerror.NewInvalidInput(nil, "otp", "otp has an invalid length")
	}

	normalized, err := phone.Normalize(in.PhoneNumber)
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "phone_number", "phone number is not a valid Iranian mobile number")
	}

	codeHash, err := s.hmac.Hash(in.Otp)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	consumed, err := s.repoDB.ConsumeOtp(ctx, normalized, string(codeHash), now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume otp", "phone", normalized, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !consumed {
		expired, err := s.repoDB.ConsumeExpiredOtp(ctx, normalized, string(codeHash), now)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo consume expired otp", "phone", normalized, "error", err)
			return nil, goerror.NewServer(err)
		}

		if expired {
			slog.WarnContext(ctx, "otp login with expired code", "phone", normalized)
			return nil, goerror.NewBusiness("OTP has expired. Please request a new one.", goerror.CodeUnauthorized)
		}

		slog.WarnContext(ctx, "otp login with invalid code", "phone", normalized)
		return nil, goerror.NewBusiness("Invalid OTP code.", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.UpsertUserByPhone(ctx, entity.UpsertUser{
		ID:    s.uid.Generate(),
		Phone: normalized,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert user by phone", "phone", normalized, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.jwt.Generate(user.ID, user.Phone)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	profile, err := s.repoDB.GetProfile(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get profile", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &LoginWithOtpOutput{
		AccessToken: token,
		Profile:     *profile,
	}, nil
}
