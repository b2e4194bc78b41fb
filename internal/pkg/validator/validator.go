package validator

// Validator validates a struct according to its field tags.
type Validator interface {
	// Validate returns nil when data passes, or an error describing the
	// failing fields.
	Validate(data any) error
}
