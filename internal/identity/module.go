package identity

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peyvandhq/peyvand/internal/identity/inbound"
	"github.com/peyvandhq/peyvand/internal/identity/outbound/db"
	"github.com/peyvandhq/peyvand/internal/identity/outbound/mq"
	"github.com/peyvandhq/peyvand/internal/identity/usecase"
	"github.com/peyvandhq/peyvand/internal/pkg/clock"
	"github.com/peyvandhq/peyvand/internal/pkg/config"
	"github.com/peyvandhq/peyvand/internal/pkg/goroutine"
	"github.com/peyvandhq/peyvand/internal/pkg/hash"
	"github.com/peyvandhq/peyvand/internal/pkg/idempotency"
	"github.com/peyvandhq/peyvand/internal/pkg/instrument"
	"github.com/peyvandhq/peyvand/internal/pkg/jwt"
	"github.com/peyvandhq/peyvand/internal/pkg/messaging"
	"github.com/peyvandhq/peyvand/internal/pkg/otpcode"
	"github.com/peyvandhq/peyvand/internal/pkg/router"
	"github.com/peyvandhq/peyvand/internal/pkg/storage"
	"github.com/peyvandhq/peyvand/internal/pkg/uid"
	"github.com/peyvandhq/peyvand/internal/pkg/validator"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	CacheConn   *redis.Client              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Storage     storage.Storage            `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	HMAC        hash.Hash                  `validate:"required"`
	OtpCode     otpcode.Generator          `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbIdentity := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbIdentity,
		RepoMessaging: repoMsg,
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Storage:       dep.Storage,
		HMAC:          dep.HMAC,
		OtpCode:       dep.OtpCode,
		UID:           dep.UID,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
