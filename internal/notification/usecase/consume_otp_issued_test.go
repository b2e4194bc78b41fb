package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/peyvandhq/peyvand/internal/pkg/config"
	"github.com/peyvandhq/peyvand/internal/pkg/instrument"
	"github.com/peyvandhq/peyvand/internal/pkg/validator"
)

const testConfigYAML = `
app:
  name: Peyvand
modules:
  notification:
    sms_retry_max: 0
    sms_retry_base_seconds: 1
    sms_retry_cap_seconds: 1
`

type sentSMS struct {
	to   string
	body string
}

type fakeSMS struct {
	sent    []sentSMS
	failFor int
}

func (f *fakeSMS) Send(_ context.Context, to, body string) error {
	if f.failFor > 0 {
		f.failFor--
		return errors.New("gateway unavailable")
	}
	f.sent = append(f.sent, sentSMS{to: to, body: body})
	return nil
}

func newTestUsecase(t *testing.T) (*Usecase, *fakeSMS) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}
	t.Cleanup(func() { _ = cfg.Close() })

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	sender := &fakeSMS{}
	uc := New(Dependency{
		RepoSMS:    sender,
		Config:     cfg,
		Validator:  v10,
		Instrument: instrument.NewNoop(),
	})

	return uc, sender
}

func TestConsumeOtpIssued(t *testing.T) {
	uc, sender := newTestUsecase(t)

	err := uc.ConsumeOtpIssued(context.Background(), ConsumeOtpIssuedInput{
		Phone:     "+989123456789",
		Code:      "482913",
		ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("ConsumeOtpIssued returned error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent sms = %d, want 1", len(sender.sent))
	}
	if sender.sent[0].to != "+989123456789" {
		t.Fatalf("recipient = %q, want the event phone", sender.sent[0].to)
	}
	if !strings.Contains(sender.sent[0].body, "482913") {
		t.Fatalf("body = %q, want it to contain the code", sender.sent[0].body)
	}
	if !strings.Contains(sender.sent[0].body, "Peyvand") {
		t.Fatalf("body = %q, want it to contain the app name", sender.sent[0].body)
	}
}

func TestConsumeOtpIssued_InvalidPayloadDropped(t *testing.T) {
	uc, sender := newTestUsecase(t)

	err := uc.ConsumeOtpIssued(context.Background(), ConsumeOtpIssuedInput{
		Phone:     "not-a-phone",
		Code:      "482913",
		ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("a bad payload must be dropped, not requeued: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatal("no sms should be sent for a bad payload")
	}
}

func TestConsumeOtpIssued_ExpiredCodeSkipped(t *testing.T) {
	uc, sender := newTestUsecase(t)

	err := uc.ConsumeOtpIssued(context.Background(), ConsumeOtpIssuedInput{
		Phone:     "+989123456789",
		Code:      "482913",
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("ConsumeOtpIssued returned error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatal("no sms should be sent for an expired code")
	}
}

func TestConsumeOtpIssued_GatewayFailureDropped(t *testing.T) {
	uc, sender := newTestUsecase(t)
	sender.failFor = 5

	err := uc.ConsumeOtpIssued(context.Background(), ConsumeOtpIssuedInput{
		Phone:     "+989123456789",
		Code:      "482913",
		ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("delivery failure must not fail the consumer: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatal("send should have failed")
	}
}
