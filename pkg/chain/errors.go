package chain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSpecification is matched by every malformed chain literal.
	ErrInvalidSpecification = errors.New("invalid chain specification")
	// ErrMissingAccessor is matched when a receiver has no such method or field.
	ErrMissingAccessor = errors.New("missing accessor")
	// ErrArity is matched when call arguments do not fit a method signature.
	ErrArity = errors.New("argument mismatch")
)

// InvalidSpecificationError describes where a chain literal is malformed.
// Path lists the accessor names leading to the offending level.
type InvalidSpecificationError struct {
	Path   []string
	Reason string
}

func (e *InvalidSpecificationError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%v: %s", ErrInvalidSpecification, e.Reason)
	}
	return fmt.Sprintf("%v at %s: %s", ErrInvalidSpecification, strings.Join(e.Path, "."), e.Reason)
}

func (e *InvalidSpecificationError) Is(target error) bool {
	return target == ErrInvalidSpecification
}

// MissingAccessorError is returned when the receiver cannot answer an accessor.
type MissingAccessorError struct {
	Kind     Kind
	Name     string
	Receiver string
}

func (e *MissingAccessorError) Error() string {
	return fmt.Sprintf("undefined %v accessor %q for %s", e.Kind, e.Name, e.Receiver)
}

func (e *MissingAccessorError) Is(target error) bool {
	return target == ErrMissingAccessor
}

// ArityError is returned when call arguments cannot be passed to a method.
type ArityError struct {
	Name     string
	Receiver string
	Reason   string
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("wrong arguments for %s.%s: %s", e.Receiver, e.Name, e.Reason)
}

func (e *ArityError) Is(target error) bool {
	return target == ErrArity
}

func receiverName(receiver any) string {
	if receiver == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", receiver)
}
