package sms

import (
	"context"

	"github.com/peyvandhq/peyvand/internal/pkg/instrument"
	pkgsms "github.com/peyvandhq/peyvand/internal/pkg/sms"
	"go.opentelemetry.io/otel/codes"
)

type SMS struct {
	client pkgsms.Sender
	ins    instrument.Instrumentation
}

func New(client pkgsms.Sender, ins instrument.Instrumentation) *SMS {
	return &SMS{client: client, ins: ins}
}

func (m *SMS) Send(ctx context.Context, to, body string) error {
	ctx, span := m.ins.Tracer("notification.outbound.sms").Start(ctx, "Send")
	defer span.End()

	if err := m.client.Send(ctx, to, body); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
