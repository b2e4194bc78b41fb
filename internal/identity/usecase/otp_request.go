package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/peyvandhq/peyvand/internal/identity/entity"
	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/pkg/idempotency"
	"github.com/peyvandhq/peyvand/internal/pkg/phone"
)

type RequestOtpInput struct {
	PhoneNumber string `validate:"required,irmobile"`
}

type RequestOtpOutput struct {
	// Code is set only when expose_otp_in_response is enabled, for
	// development environments without an SMS provider.
	Code string
}

func (s *Usecase) RequestOtp(ctx context.Context, in RequestOtpInput) (*RequestOtpOutput, error) {
	ctx, span := s.startSpan(ctx, "RequestOtp")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	normalized, err := phone.Normalize(in.PhoneNumber)
	if err != nil {
		return nil, goerror.NewInvalidInput(nil, "phone_number", "phone number is not a valid Iranian mobile number")
	}

	// the guard is an in-flight lock only: it collapses concurrent submits
	// for one phone, while a finished request, successful or not, leaves
	// the next re-request free to replace the pending code
	out := &RequestOtpOutput{}
	err = s.idemp.Exec(ctx, "otp_request:"+normalized, func(ctx context.Context) error {
		return s.issueOtp(ctx, normalized, out)
	},
		idempotency.WithLockDuration(s.cfg.GetSecond("modules.identity.otp_request_lock_seconds")),
	)
	if errors.Is(err, idempotency.ErrAlreadyInProgress) {
		slog.WarnContext(ctx, "otp request already in flight", "phone", normalized)
		return nil, goerror.NewBusiness("A code is already being sent to this number. Please try again in a moment.", goerror.CodeTooManyRequest)
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Usecase) issueOtp(ctx context.Context, normalized string, out *RequestOtpOutput) error {
	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
		return goerror.NewServer(err)
	}

	expiresAt := s.clock.Now().Add(s.cfg.GetMinute("modules.identity.otp_ttl_minutes"))
	if err := s.repoDB.ReplaceOtp(ctx, entity.Otp{
		Phone:     normalized,
		CodeHash:  string(codeHash),
		ExpiresAt: expiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo replace otp", "phone", normalized, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOtpIssued(ctx, OtpIssuedEvent{
		Phone:     normalized,
		Code:      code,
		ExpiresAt: expiresAt.Unix(),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish otp issued event", "phone", normalized, "error", err)
		return goerror.NewServer(err)
	}

	if s.cfg.GetBool("modules.identity.expose_otp_in_response") {
		out.Code = code
	}

	return nil
}
