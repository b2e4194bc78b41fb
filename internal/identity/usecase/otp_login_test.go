package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/peyvandhq/peyvand/internal/identity/entity"
	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
)

func issueOtpForTest(t *testing.T, uc *Usecase, phone string) {
	t.Helper()

	if _, err := uc.RequestOtp(context.Background(), RequestOtpInput{PhoneNumber: phone}); err != nil {
		t.Fatalf("RequestOtp() error = %v", err)
	}
}

func TestLoginWithOtp_RoundTrip(t *testing.T) {
	uc, deps := newTestUsecase(t)
	issueOtpForTest(t, uc, "09123456789")

	out, err := uc.LoginWithOtp(context.Background(), LoginWithOtpInput{
		PhoneNumber: "0912 345 6789",
		Otp:         "123456",
	})
	if err != nil {
		t.Fatalf("LoginWithOtp() error = %v", err)
	}

	if out.AccessToken != "token-abc" {
		t.Fatalf("LoginWithOtp() token = %q", out.AccessToken)
	}
	if out.Profile.User.Phone != "+989123456789" {
		t.Fatalf("LoginWithOtp() profile phone = %q", out.Profile.User.Phone)
	}
	if out.Profile.User.ID != 7001 {
		t.Fatalf("LoginWithOtp() user id = %d, want freshly minted 7001", out.Profile.User.ID)
	}
	if len(deps.repo.otps) != 0 {
		t.Fatal("LoginWithOtp() left the consumed otp in place")
	}
}

func TestLoginWithOtp_SingleUse(t *testing.T) {
	uc, _ := newTestUsecase(t)
	issueOtpForTest(t, uc, "09123456789")

	in := LoginWithOtpInput{PhoneNumber: "09123456789", Otp: "123456"}
	if _, err := uc.LoginWithOtp(context.Background(), in); err != nil {
		t.Fatalf("first LoginWithOtp() error = %v", err)
	}

	_, err := uc.LoginWithOtp(context.Background(), in)
	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeUnauthorized {
		t.Fatalf("second LoginWithOtp() error = %v, want unauthorized", err)
	}
	if gerr.Msg() != "Invalid OTP code." {
		t.Fatalf("second LoginWithOtp() message = %q", gerr.Msg())
	}
}

func TestLoginWithOtp_WrongCode(t *testing.T) {
	uc, _ := newTestUsecase(t)
	issueOtpForTest(t, uc, "09123456789")

	_, err := uc.LoginWithOtp(context.Background(), LoginWithOtpInput{
		PhoneNumber: "09123456789",
		Otp:         "999999",
	})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Msg() != "Invalid OTP code." {
		t.Fatalf("LoginWithOtp() error = %v, want invalid otp", err)
	}
}

func TestLoginWithOtp_Expired(t *testing.T) {
	uc, deps := newTestUsecase(t)
	deps.repo.otps["+989123456789"] = entity.Otp{
		Phone:     "+989123456789",
		CodeHash:  hashCode(t, deps, "123456"),
		ExpiresAt: deps.clock.T.Add(-time.Second),
	}

	in := LoginWithOtpInput{PhoneNumber: "09123456789", Otp: "123456"}
	_, err := uc.LoginWithOtp(context.Background(), in)

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Msg() != "OTP has expired. Please request a new one." {
		t.Fatalf("LoginWithOtp() error = %v, want expired otp", err)
	}

	// The expired row was removed, so a retry now reads as invalid.
	_, err = uc.LoginWithOtp(context.Background(), in)
	if !errors.As(err, &gerr) || gerr.Msg() != "Invalid OTP code." {
		t.Fatalf("retry LoginWithOtp() error = %v, want invalid otp", err)
	}
}

func TestLoginWithOtp_BadLength(t *testing.T) {
	uc, _ := newTestUsecase(t)

	_, err := uc.LoginWithOtp(context.Background(), LoginWithOtpInput{
		PhoneNumber: "09123456789",
		Otp:         "1234",
	})

	var gerr *goerror.Error
	if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
		t.Fatalf("LoginWithOtp() error = %v, want invalid input", err)
	}
}

func TestLoginWithOtp_IdentityCreatedOnceAndReused(t *testing.T) {
	uc, deps := newTestUsecase(t)

	issueOtpForTest(t, uc, "09123456789")
	first, err := uc.LoginWithOtp(context.Background(), LoginWithOtpInput{PhoneNumber: "09123456789", Otp: "123456"})
	if err != nil {
		t.Fatalf("first LoginWithOtp() error = %v", err)
	}

	deps.otp.code = "222333"
	issueOtpForTest(t, uc, "09123456789")
	second, err := uc.LoginWithOtp(context.Background(), LoginWithOtpInput{PhoneNumber: "09123456789", Otp: "222333"})
	if err != nil {
		t.Fatalf("second LoginWithOtp() error = %v", err)
	}

	if first.Profile.User.ID != second.Profile.User.ID {
		t.Fatalf("logins resolved different users: %d then %d", first.Profile.User.ID, second.Profile.User.ID)
	}
	if len(deps.repo.users) != 1 {
		t.Fatalf("got %d users, want 1", len(deps.repo.users))
	}
}

func hashCode(t *testing.T, deps *testDeps, code string) string {
	t.Helper()

	h, err := deps.hmac.Hash(code)
	if err != nil {
		t.Fatalf("failed to hash code: %v", err)
	}
	return string(h)
}
