package validator

import (
	"errors"
	"testing"
)

func TestValidateIrmobile(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator returned error: %v", err)
	}

	type req struct {
		PhoneNumber string `validate:"required,irmobile"`
	}

	if err := v.Validate(req{PhoneNumber: "09123456789"}); err != nil {
		t.Fatalf("expected valid phone to pass, got: %v", err)
	}

	err = v.Validate(req{PhoneNumber: "12345"})
	if err == nil {
		t.Fatal("expected invalid phone to fail")
	}

	var verr V10ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected V10ValidationError, got %T", err)
	}

	if _, ok := verr.Values()["phone_number"]; !ok {
		t.Fatalf("expected snake_case field key, got %v", verr.Values())
	}
}

func TestValidateAlphaspace(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator returned error: %v", err)
	}

	type req struct {
		Name string `validate:"required,alphaspace"`
	}

	if err := v.Validate(req{Name: "Sara Ahmadi"}); err != nil {
		t.Fatalf("expected letters and spaces to pass, got: %v", err)
	}

	if err := v.Validate(req{Name: "x123"}); err == nil {
		t.Fatal("expected digits to fail alphaspace")
	}
}
