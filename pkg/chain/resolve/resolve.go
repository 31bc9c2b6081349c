package resolve

import (
	"fmt"

	"github.com/ib-77/delegate/pkg/chain"
)

// Step describes one accessor evaluation.
type Step struct {
	Chain    int
	Depth    int
	Accessor chain.Accessor
	Receiver any
	Value    any
	Empty    bool
	Err      error
}

type Option func(r *Resolver)

// WithObserver registers a function called after every accessor evaluation.
func WithObserver(observer func(step Step)) Option {
	return func(r *Resolver) {
		r.observer = observer
	}
}

// Resolver holds no state between calls; it is safe for concurrent use as
// long as its observer is.
type Resolver struct {
	observer func(step Step)
}

func New(options ...Option) *Resolver {
	r := &Resolver{}
	for _, option := range options {
		option(r)
	}
	return r
}

var defaultResolver = New()

// Resolve walks spec from root, passing args to every call accessor. A nil
// spec fails with chain.ErrInvalidSpecification.
func Resolve(root any, spec *chain.Specification, args ...any) (any, error) {
	return defaultResolver.Resolve(root, spec, args...)
}

// First walks specs in order and returns the first non-empty value with the
// index of its chain. Index is -1 when every chain is empty.
func First(root any, specs []*chain.Specification, args ...any) (any, int, error) {
	return defaultResolver.First(root, specs, args...)
}

func (r *Resolver) Resolve(root any, spec *chain.Specification, args ...any) (any, error) {
	return r.walk(0, root, spec, args)
}

func (r *Resolver) First(root any, specs []*chain.Specification, args ...any) (any, int, error) {
	for i, spec := range specs {
		value, err := r.walk(i, root, spec, args)
		if err != nil {
			return nil, i, err
		}
		if value != nil {
			return value, i, nil
		}
	}
	return nil, -1, nil
}

func (r *Resolver) walk(index int, root any, spec *chain.Specification, args []any) (any, error) {
	if spec == nil || spec.Root() == nil {
		return nil, &chain.InvalidSpecificationError{Reason: fmt.Sprintf("chain %d is not a parsed specification", index)}
	}
	receiver := root
	depth := 0
	for node := spec.Root(); node != nil; node = node.Next() {
		value, err := r.evaluate(index, depth, node.Accessor(), receiver, args)
		if err != nil || value == nil {
			return nil, err
		}
		depth++
		if node.IsLeaf() {
			return r.evaluate(index, depth, node.Terminal(), value, args)
		}
		receiver = value
	}
	return nil, nil
}

// evaluate normalizes empty results to nil so callers only test for nil.
func (r *Resolver) evaluate(index, depth int, accessor chain.Accessor, receiver any, args []any) (any, error) {
	value, err := accessor.Evaluate(receiver, args)
	empty := err == nil && chain.IsEmpty(value)
	if empty {
		value = nil
	}
	if r.observer != nil {
		r.observer(Step{
			Chain:    index,
			Depth:    depth,
			Accessor: accessor,
			Receiver: receiver,
			Value:    value,
			Empty:    empty,
			Err:      err,
		})
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}
