// Package sms delivers text messages to users. Twilio backs real
// deployments; the log driver is for local development where codes are read
// from the service output.
package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DriverTwilio selects the Twilio backend.
	DriverTwilio = "twilio"
	// DriverLog selects the log-only backend.
	DriverLog = "log"
)

// ErrUnknownDriver indicates an unsupported SMS driver.
var ErrUnknownDriver = errors.New("sms: unknown driver")

// Sender delivers a text message to a phone number in E.164 form.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// FactoryOptions groups configuration for SMS drivers.
type FactoryOptions struct {
	// Twilio configures the Twilio backend.
	Twilio TwilioOptions
}

// NewFromDriver constructs a Sender implementation by driver name.
func NewFromDriver(driver string, opts FactoryOptions) (Sender, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverTwilio:
		return NewTwilio(opts.Twilio)
	case DriverLog:
		return NewLog(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
