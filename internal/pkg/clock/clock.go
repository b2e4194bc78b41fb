// Package clock abstracts the time source so OTP expiry rules can be tested
// against a frozen or stepped clock instead of the wall clock.
package clock

import "time"

// Clocker provides the current time.
type Clocker interface {
	Now() time.Time
}

// TimeClocker is the production clock backed by time.Now.
type TimeClocker struct{}

// New returns a TimeClocker reading the system time.
func New() *TimeClocker {
	return &TimeClocker{}
}

// Now returns the current system time.
func (*TimeClocker) Now() time.Time {
	return time.Now()
}

// Static is a fixed clock for tests.
type Static struct {
	// T is the time returned by Now.
	T time.Time
}

// Now returns the fixed time.
func (s Static) Now() time.Time {
	return s.T
}
