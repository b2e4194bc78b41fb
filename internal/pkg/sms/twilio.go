package sms

import (
	"context"
	"errors"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// ErrTwilioCredentialsRequired is returned when the account or token is missing.
var ErrTwilioCredentialsRequired = errors.New("sms: twilio account sid, auth token, and from number are required")

// TwilioOptions configures the Twilio client.
type TwilioOptions struct {
	// AccountSID identifies the Twilio account.
	AccountSID string
	// AuthToken authenticates API calls.
	AuthToken string
	// From is the sending phone number in E.164 form.
	From string
}

// Twilio sends SMS through the Twilio REST API.
type Twilio struct {
	client *twilio.RestClient
	from   string
}

// NewTwilio constructs a Twilio-backed Sender.
func NewTwilio(opts TwilioOptions) (*Twilio, error) {
	if opts.AccountSID == "" || opts.AuthToken == "" || opts.From == "" {
		return nil, ErrTwilioCredentialsRequired
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: opts.AccountSID,
		Password: opts.AuthToken,
	})

	return &Twilio{client: client, from: opts.From}, nil
}

// Send delivers the message body to the given number.
func (t *Twilio) Send(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(to)
	params.SetBody(body)

	_, err := t.client.Api.CreateMessage(params)

	return err
}
