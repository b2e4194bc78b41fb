package notification

import (
	"context"

	"github.com/peyvandhq/peyvand/internal/notification/inbound"
	"github.com/peyvandhq/peyvand/internal/notification/outbound/sms"
	"github.com/peyvandhq/peyvand/internal/notification/usecase"
	"github.com/peyvandhq/peyvand/internal/pkg/config"
	"github.com/peyvandhq/peyvand/internal/pkg/goroutine"
	"github.com/peyvandhq/peyvand/internal/pkg/instrument"
	"github.com/peyvandhq/peyvand/internal/pkg/messaging"
	pkgsms "github.com/peyvandhq/peyvand/internal/pkg/sms"
	"github.com/peyvandhq/peyvand/internal/pkg/uid"
	"github.com/peyvandhq/peyvand/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	SMS        pkgsms.Sender              `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	repoSMS := sms.New(dep.SMS, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoSMS:    repoSMS,
		Config:     dep.Config,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	if dep.Ctx != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
