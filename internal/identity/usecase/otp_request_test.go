package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
)

func TestRequestOtp(t *testing.T) {
	uc, deps := newTestUsecase(t)

	out, err := uc.RequestOtp(context.Background(), RequestOtpInput{PhoneNumber: "09123456789"})
	if err != nil {
		t.Fatalf("RequestOtp() error = %v", err)
	}
	if out.Code != "" {
		t.Fatalf("RequestOtp() exposed code %q with expose_otp_in_response disabled", out.Code)
	}

	otp, ok := deps.repo.otps["+989123456789"]
	if !ok {
		t.Fatalf("RequestOtp() stored no otp for normalized phone, got %v", deps.repo.otps)
	}
	if otp.CodeHash == "123456" {
		t.Fatal("RequestOtp() stored the code in plaintext")
	}

	wantExpiry := deps.clock.T.Add(5 * time.Minute)
	if !otp.ExpiresAt.Equal(wantExpiry) {
		t.Fatalf("RequestOtp() expiry = %v, want %v", otp.ExpiresAt, wantExpiry)
	}

	if len(deps.msg.published) != 1 {
		t.Fatalf("RequestOtp() published %d events, want 1", len(deps.msg.published))
	}
	if got := deps.msg.published[0]; got.Phone != "+989123456789" || got.Code != "123456" {
		t.Fatalf("RequestOtp() published event = %+v", got)
	}
}

func TestRequestOtp_ReissueReplacesPending(t *testing.T) {
	uc, deps := newTestUsecase(t)

	if _, err := uc.RequestOtp(context.Background(), RequestOtpInput{PhoneNumber: "09123456789"}); err != nil {
		t.Fatalf("first RequestOtp() error = %v", err)
	}
	firstHash := deps.repo.otps["+989123456789"].CodeHash

	deps.otp.code = "654321"
	if _, err := uc.RequestOtp(context.Background(), RequestOtpInput{PhoneNumber: "+98 912 345 6789"}); err != nil {
		t.Fatalf("second RequestOtp() error = %v", err)
	}

	if len(deps.repo.otps) != 1 {
		t.Fatalf("got %d active otps, want 1", len(deps.repo.otps))
	}
	if deps.repo.otps["+989123456789"].CodeHash == firstHash {
		t.Fatal("reissue kept the previous code active")
	}
}

func TestRequestOtp_InvalidPhone(t *testing.T) {
	uc, _ := newTestUsecase(t)

	for _, phone := range []string{"", "12345", "0212345678", "not-a-phone"} {
		_, err := uc.RequestOtp(context.Background(), RequestOtpInput{PhoneNumber: phone})

		var gerr *goerror.Error
		if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
			t.Fatalf("RequestOtp(%q) error = %v, want invalid input", phone, err)
		}
	}
}

func TestRequestOtp_ConcurrentRequestCollapses(t *testing.T) {
	uc, deps := newTestUsecase(t)
	deps.idemp.locked = map[string]bool{"otp_request:+989123456789": true}

	_, err := uc.RequestOtp(context.Background(), RequestOtpInput{PhoneNumber: "09123456789"})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeTooManyRequest {
		t.Fatalf("RequestOtp() error = %v, want too many requests", err)
	}
}

func TestRequestOtp_RetryableAfterFailedIssue(t *testing.T) {
	uc, deps := newTestUsecase(t)
	deps.msg.err = errBoom

	_, err := uc.RequestOtp(context.Background(), RequestOtpInput{PhoneNumber: "09123456789"})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInternal {
		t.Fatalf("RequestOtp() error = %v, want a server error", err)
	}

	deps.msg.err = nil
	if _, err := uc.RequestOtp(context.Background(), RequestOtpInput{PhoneNumber: "09123456789"}); err != nil {
		t.Fatalf("RequestOtp() after a failed attempt error = %v, want immediate retry to succeed", err)
	}
	if len(deps.msg.published) != 1 {
		t.Fatalf("retry published %d events, want 1", len(deps.msg.published))
	}
}

func TestRequestOtp_GeneratorFailureFailsClosed(t *testing.T) {
	uc, deps := newTestUsecase(t)
	deps.otp.err = errBoom

	_, err := uc.RequestOtp(context.Background(), RequestOtpInput{PhoneNumber: "09123456789"})
	if err == nil {
		t.Fatal("RequestOtp() succeeded with a failing code generator")
	}
	if len(deps.repo.otps) != 0 {
		t.Fatal("RequestOtp() stored an otp despite generator failure")
	}
}
