// Package idempotency guards operations that must not run twice for the same
// key, such as issuing a login code for a phone number while a previous
// request is still in flight. State lives in Redis so the guard holds across
// instances.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrAlreadyFailed     = errors.New("operation already failed")
	ErrInvalidState      = errors.New("invalid state")
)

// State describes what is known about an operation key.
type State string

const (
	StateNone       State = "none"        // operation can proceed
	StateInProgress State = "in_progress" // operation already in progress
	StateCompleted  State = "completed"   // operation already completed
	StateFailed     State = "failed"      // previous attempt failed
	StateError      State = "error"       // state could not be determined
)

func (s State) String() string {
	return string(s)
}

// Idempotency coordinates exclusive execution per key.
type Idempotency interface {
	Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error)
	MarkCompleted(ctx context.Context, key string, ttl time.Duration) error
	MarkFailed(ctx context.Context, key string, ttl time.Duration) error
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

// StateTracker is the Redis-backed Idempotency implementation.
type StateTracker struct {
	client *redis.Client
	prefix string
}

// New builds a StateTracker on the given Redis client.
func New(client *redis.Client) *StateTracker {
	return &StateTracker{client: client, prefix: "idempotency:"}
}

const defaultLockDuration = time.Minute

// Option adjusts Exec behavior.
type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

// WithLockDuration sets how long the in-progress lock is held.
func WithLockDuration(d time.Duration) Option {
	return func(o *execOptions) {
		o.lockDuration = d
	}
}

// WithStateTTL sets how long completed/failed outcomes are remembered after
// fn returns. Without it the key is released as soon as fn returns, so the
// guard is a pure in-flight lock and the operation can be repeated
// immediately.
func WithStateTTL(d time.Duration) Option {
	return func(o *execOptions) {
		o.stateTTL = d
	}
}

// Acquire attempts to claim the key. StateNone means the caller owns the key
// and may proceed; any other state reports what happened before.
func (s *StateTracker) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	fk := s.prefix + key

	acquired, err := s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
	if err != nil {
		return StateError, err
	}

	if acquired {
		return StateNone, nil
	}

	result, err := s.client.Get(ctx, fk).Result()
	if errors.Is(err, redis.Nil) {
		// the key expired between SetNX and Get, try once more
		acquired, err = s.client.SetNX(ctx, fk, StateInProgress.String(), lockDuration).Result()
		if err != nil {
			return StateError, err
		}

		if acquired {
			return StateNone, nil
		}

		return StateError, ErrInvalidState
	}

	if err != nil {
		return StateError, err
	}

	switch result {
	case StateInProgress.String():
		return StateInProgress, nil
	case StateCompleted.String():
		return StateCompleted, nil
	case StateFailed.String():
		return StateFailed, nil
	default:
		return StateError, ErrInvalidState
	}
}

// MarkCompleted records a successful outcome for the key.
func (s *StateTracker) MarkCompleted(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateCompleted.String(), ttl).Err()
}

// MarkFailed records a failed outcome for the key.
func (s *StateTracker) MarkFailed(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, StateFailed.String(), ttl).Err()
}

// Exec runs fn at most once per key at a time, reporting overlapping
// attempts with the ErrAlready* sentinels. By default the key is released
// when fn returns, whatever the outcome; WithStateTTL keeps the completed or
// failed state around instead.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	execOpt := &execOptions{
		lockDuration: defaultLockDuration,
	}

	for _, opt := range opts {
		opt(execOpt)
	}

	if execOpt.lockDuration <= 0 {
		execOpt.lockDuration = defaultLockDuration
	}

	state, err := s.Acquire(ctx, key, execOpt.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	case StateFailed:
		return ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		if execOpt.stateTTL <= 0 {
			// release errors are not worth masking fn's error over; the
			// lock duration bounds how long a stale key can linger
			_ = s.release(ctx, key)
			return err
		}

		if markErr := s.MarkFailed(ctx, key, execOpt.stateTTL); markErr != nil {
			return markErr
		}

		return err
	}

	if execOpt.stateTTL <= 0 {
		return s.release(ctx, key)
	}

	return s.MarkCompleted(ctx, key, execOpt.stateTTL)
}

func (s *StateTracker) release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
