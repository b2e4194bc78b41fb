package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/peyvandhq/peyvand/internal/identity/entity"
	"github.com/peyvandhq/peyvand/internal/pkg/clock"
	"github.com/peyvandhq/peyvand/internal/pkg/config"
	"github.com/peyvandhq/peyvand/internal/pkg/goerror"
	"github.com/peyvandhq/peyvand/internal/pkg/goroutine"
	"github.com/peyvandhq/peyvand/internal/pkg/hash"
	"github.com/peyvandhq/peyvand/internal/pkg/idempotency"
	"github.com/peyvandhq/peyvand/internal/pkg/instrument"
	"github.com/peyvandhq/peyvand/internal/pkg/jwt"
	"github.com/peyvandhq/peyvand/internal/pkg/validator"
)

var errBoom = errors.New("boom")

const testConfigYAML = `
modules:
  identity:
    otp_length: 6
    otp_ttl_minutes: 5
    otp_request_lock_seconds: 10
    expose_otp_in_response: false
    avatar_bucket: avatars
    avatar_base_url: https://cdn.example.com/avatars
    avatar_max_size_bytes: 1048576
`

// fakeRepo is an in-memory repoDB that models the otps and users tables
// closely enough to drive the issue/consume state machine.
type fakeRepo struct {
	otps       map[string]entity.Otp
	users      map[string]*entity.User
	nextErr    error
	searchOut  []entity.Profile
	searchTot  int64
	skills     []entity.Skill
	skillCount int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		otps:  map[string]entity.Otp{},
		users: map[string]*entity.User{},
	}
}

func (f *fakeRepo) takeErr() error {
	err := f.nextErr
	f.nextErr = nil
	return err
}

func (f *fakeRepo) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) GetProfile(_ context.Context, userID int64) (*entity.Profile, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.ID == userID {
			return &entity.Profile{User: *u}, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) GetPublicProfile(_ context.Context, userID, _ int64) (*entity.PublicProfile, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	for _, u := range f.users {
		if u.ID == userID {
			return &entity.PublicProfile{Profile: entity.Profile{User: *u}}, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeRepo) GetSkills(context.Context) ([]entity.Skill, error) {
	return f.skills, f.takeErr()
}

func (f *fakeRepo) CountSkillsByIDs(context.Context, []int64) (int64, error) {
	return f.skillCount, f.takeErr()
}

func (f *fakeRepo) SearchUsers(context.Context, entity.UserSearchFilter) ([]entity.Profile, int64, error) {
	return f.searchOut, f.searchTot, f.takeErr()
}

func (f *fakeRepo) ReplaceOtp(_ context.Context, otp entity.Otp) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	f.otps[otp.Phone] = otp
	return nil
}

func (f *fakeRepo) ConsumeOtp(_ context.Context, phone, codeHash string, now time.Time) (bool, error) {
	if err := f.takeErr(); err != nil {
		return false, err
	}
	otp, ok := f.otps[phone]
	if !ok || otp.CodeHash != codeHash || !otp.ExpiresAt.After(now) {
		return false, nil
	}
	delete(f.otps, phone)
	return true, nil
}

func (f *fakeRepo) ConsumeExpiredOtp(_ context.Context, phone, codeHash string, now time.Time) (bool, error) {
	if err := f.takeErr(); err != nil {
		return false, err
	}
	otp, ok := f.otps[phone]
	if !ok || otp.CodeHash != codeHash || otp.ExpiresAt.After(now) {
		return false, nil
	}
	delete(f.otps, phone)
	return true, nil
}

func (f *fakeRepo) UpsertUserByPhone(_ context.Context, in entity.UpsertUser) (*entity.User, error) {
	if err := f.takeErr(); err != nil {
		return nil, err
	}
	if u, ok := f.users[in.Phone]; ok {
		cp := *u
		return &cp, nil
	}
	u := &entity.User{ID: in.ID, Phone: in.Phone}
	f.users[in.Phone] = u
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) UpdateUserProfile(_ context.Context, id int64, name, bio string) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	for _, u := range f.users {
		if u.ID == id {
			u.Name, u.Bio = name, bio
		}
	}
	return nil
}

func (f *fakeRepo) ReplaceUserSkills(context.Context, int64, []int64) error {
	return f.takeErr()
}

func (f *fakeRepo) UpdateUserAvatar(_ context.Context, id int64, avatarURL string) error {
	if err := f.takeErr(); err != nil {
		return err
	}
	for _, u := range f.users {
		if u.ID == id {
			u.AvatarURL = avatarURL
		}
	}
	return nil
}

type fakeMessaging struct {
	published []OtpIssuedEvent
	err       error
}

func (f *fakeMessaging) PublishOtpIssued(_ context.Context, msg OtpIssuedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

// fakeIdemp mirrors the redis tracker's lock behavior in memory: the key is
// held while fn runs and released when it returns, whatever the outcome.
type fakeIdemp struct {
	locked map[string]bool
}

func (f *fakeIdemp) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}
func (*fakeIdemp) MarkCompleted(context.Context, string, time.Duration) error { return nil }
func (*fakeIdemp) MarkFailed(context.Context, string, time.Duration) error    { return nil }
func (f *fakeIdemp) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	if f.locked[key] {
		return idempotency.ErrAlreadyInProgress
	}
	if f.locked == nil {
		f.locked = map[string]bool{}
	}
	f.locked[key] = true
	defer delete(f.locked, key)
	return fn(ctx)
}

type fakeOtpGen struct {
	code string
	err  error
}

func (f fakeOtpGen) Generate() (string, error) { return f.code, f.err }

type fixedNumberID struct{ id int64 }

func (f fixedNumberID) Generate() int64 { return f.id }

type fixedStringID struct{ id string }

func (f fixedStringID) Generate() string { return f.id }

type fakeJWT struct {
	token string
	err   error
}

func (f fakeJWT) Generate(int64, string) (string, error) { return f.token, f.err }
func (fakeJWT) Verify(string) (jwt.Claims, error)        { return jwt.Claims{}, errors.New("unused") }

type testDeps struct {
	repo  *fakeRepo
	msg   *fakeMessaging
	idemp *fakeIdemp
	otp   *fakeOtpGen
	hmac  hash.Hash
	clock clock.Static
	cfg   config.Config
}

func newTestUsecase(t *testing.T) (*Usecase, *testDeps) {
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

	deps := &testDeps{
		repo:  newFakeRepo(),
		msg:   &fakeMessaging{},
		idemp: &fakeIdemp{},
		otp:   &fakeOtpGen{code: "123456"},
		hmac:  hash.NewHMACSHA256("test-secret"),
		clock: clock.Static{T: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)},
		cfg:   cfg,
	}

	uc := New(Dependency{
		RepoDB:        deps.repo,
		RepoMessaging: deps.msg,
		Idempotency:   deps.idemp,
		Validator:     v10,
		Config:        cfg,
		HMAC:          deps.hmac,
		OtpCode:       deps.otp,
		UID:           fixedNumberID{id: 7001},
		UUID:          fixedStringID{id: "00000000-0000-7000-8000-000000000001"},
		Clock:         deps.clock,
		JWT:           fakeJWT{token: "token-abc"},
		Instrument:    instrument.NewNoop(),
		Goroutine:     goroutine.NewManager(4),
	})

	return uc, deps
}

func authContext(uid int64, phone string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: uid, UserPhone: phone})
}
