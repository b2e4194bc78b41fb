package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

type ConsumeOtpIssuedInput struct {
	Phone     string `validate:"required,irmobile"`
	Code      string `validate:"required,numeric"`
	ExpiresAt int64  `validate:"required,gt=0"`
}

// ConsumeOtpIssued delivers a login code over SMS. Delivery failures are
// retried with capped exponential backoff and then dropped: the code is
// already stored, so a lost SMS must never poison the consumer.
func (s *Usecase) ConsumeOtpIssued(ctx context.Context, in ConsumeOtpIssuedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOtpIssued")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	ttl := time.Until(time.Unix(in.ExpiresAt, 0))
	if ttl <= 0 {
		slog.WarnContext(ctx, "skipping sms for already expired otp", "expires_at", in.ExpiresAt)
		return nil
	}

	body := fmt.Sprintf(
		"%s login code: %s. It expires in %d minutes. Do not share it with anyone.",
		s.cfg.GetString("app.name"), in.Code, int(ttl.Round(time.Minute).Minutes()),
	)

	base := s.cfg.GetSecond("modules.notification.sms_retry_base_seconds")
	if base <= 0 {
		base = time.Second
	}

	backoff := retry.NewExponential(base)
	backoff = retry.WithCappedDuration(s.cfg.GetSecond("modules.notification.sms_retry_cap_seconds"), backoff)
	backoff = retry.WithMaxRetries(uint64(s.cfg.GetInt64("modules.notification.sms_retry_max")), backoff)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.repoSMS.Send(ctx, in.Phone, body); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to send otp sms after retries", "error", err)
	}

	return nil
}
