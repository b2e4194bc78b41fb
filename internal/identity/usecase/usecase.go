package usecase

import (
	"context"
	"time"

	"github.com/peyvandhq/peyvand/internal/identity/entity"
	"github.com/peyvandhq/peyvand/internal/pkg/clock"
	"github.com/peyvandhq/peyvand/internal/pkg/config"
	"github.com/peyvandhq/peyvand/internal/pkg/goroutine"
	"github.com/peyvandhq/peyvand/internal/pkg/hash"
	"github.com/peyvandhq/peyvand/internal/pkg/idempotency"
	"github.com/peyvandhq/peyvand/internal/pkg/instrument"
	"github.com/peyvandhq/peyvand/internal/pkg/jwt"
	"github.com/peyvandhq/peyvand/internal/pkg/otpcode"
	"github.com/peyvandhq/peyvand/internal/pkg/storage"
	"github.com/peyvandhq/peyvand/internal/pkg/uid"
	"github.com/peyvandhq/peyvand/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type OtpIssuedEvent struct {
	Phone     string
	Code      string
	ExpiresAt int64
}

type repoMessaging interface {
	PublishOtpIssued(ctx context.Context, msg OtpIssuedEvent) error
}

type repoDB interface {
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetProfile(ctx context.Context, userID int64) (*entity.Profile, error)
	GetPublicProfile(ctx context.Context, userID, viewerID int64) (*entity.PublicProfile, error)
	GetSkills(ctx context.Context) ([]entity.Skill, error)
	CountSkillsByIDs(ctx context.Context, ids []int64) (int64, error)
	SearchUsers(ctx context.Context, filter entity.UserSearchFilter) ([]entity.Profile, int64, error)

	ReplaceOtp(ctx context.Context, otp entity.Otp) error
	ConsumeOtp(ctx context.Context, phone, codeHash string, now time.Time) (bool, error)
	ConsumeExpiredOtp(ctx context.Context, phone, codeHash string, now time.Time) (bool, error)

	UpsertUserByPhone(ctx context.Context, in entity.UpsertUser) (*entity.User, error)
	UpdateUserProfile(ctx context.Context, id int64, name, bio string) error
	ReplaceUserSkills(ctx context.Context, userID int64, skillIDs []int64) error
	UpdateUserAvatar(ctx context.Context, id int64, avatarURL string) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	hmac          hash.Hash
	otp           otpcode.Generator
	uid           uid.NumberID
	uuid          uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	HMAC          hash.Hash
	OtpCode       otpcode.Generator
	UID           uid.NumberID
	UUID          uid.StringID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		hmac:          dep.HMAC,
		otp:           dep.OtpCode,
		uid:           dep.UID,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}
