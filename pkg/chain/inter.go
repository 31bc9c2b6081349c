package chain

import "time"

// Caller lets a receiver answer call accessors itself instead of being
// dispatched through reflection.
type Caller interface {
	// CallAccessor invokes the named accessor with the caller's arguments
	CallAccessor(name string, args []any) (any, error)
}

// FieldReader lets a receiver expose its stored fields by name.
type FieldReader interface {
	// ReadField returns the stored value and whether such a field exists
	ReadField(name string) (any, bool)
}

type ValueProvider interface {
	// Value returns the resolved value, nil when empty
	Value() any
	// CreatedAt time creation (UTC)
	CreatedAt() time.Time
}

// WithError defines an interface for outcomes that carry a value or an error
type WithError interface {
	ValueProvider
	// Err returns the evaluation error, if any
	Err() error
	// IsPresent returns true if some chain produced a value
	IsPresent() bool
}
