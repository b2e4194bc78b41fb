package inbound

import (
	"context"

	"github.com/peyvandhq/peyvand/internal/notification/usecase"
)

type uc interface {
	ConsumeOtpIssued(ctx context.Context, in usecase.ConsumeOtpIssuedInput) error
}
