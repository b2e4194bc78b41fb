package config

import (
	"io"
	"time"
)

// Config reads typed configuration values by dotted key. Implementations
// return the zero value when a key is missing or cannot be converted, so
// callers must provide sensible handling for absent settings.
type Config interface {
	io.Closer

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetInt returns the value for key as an int.
	GetInt(key string) int

	// GetInt64 returns the value for key as an int64.
	GetInt64(key string) int64

	// GetUint16 returns the value for key as a uint16.
	GetUint16(key string) uint16

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetSecond returns the value for key interpreted as a count of seconds.
	GetSecond(key string) time.Duration

	// GetMinute returns the value for key interpreted as a count of minutes.
	GetMinute(key string) time.Duration

	// GetHour returns the value for key interpreted as a count of hours.
	GetHour(key string) time.Duration

	// GetBinary returns the value for key decoded from base64.
	GetBinary(key string) []byte

	// GetArray returns the value for key split on commas.
	GetArray(key string) []string

	// GetMap returns the value for key parsed from "<k>:<v>,<k>:<v>" pairs.
	GetMap(key string) map[string]string
}
