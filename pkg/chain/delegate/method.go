package delegate

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/ib-77/delegate/pkg/chain"
	"github.com/ib-77/delegate/pkg/chain/resolve"
)

var (
	ErrEmptyName = errors.New("method name is empty")
	ErrNoChains  = errors.New("at least one chain is required")
)

var defaultResolver = resolve.New()

// DefinitionError reports why a method could not be defined. Chain is the
// zero based index of the offending literal, -1 when no literal is at fault.
type DefinitionError struct {
	Method string
	Chain  int
	Err    error
}

func (e *DefinitionError) Error() string {
	if e.Chain < 0 {
		return fmt.Sprintf("define %q: %v", e.Method, e.Err)
	}
	return fmt.Sprintf("define %q: chain %d: %v", e.Method, e.Chain+1, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// Method is a delegated method: an ordered list of validated chains.
type Method struct {
	name  string
	specs []*chain.Specification
}

// Define validates every literal, highest priority first, and fails on the
// first malformed one.
func Define(name string, literals ...any) (*Method, error) {
	if name == "" {
		return nil, &DefinitionError{Chain: -1, Err: ErrEmptyName}
	}
	if len(literals) == 0 {
		return nil, &DefinitionError{Method: name, Chain: -1, Err: ErrNoChains}
	}
	specs := make([]*chain.Specification, 0, len(literals))
	for i, literal := range literals {
		spec, err := chain.Parse(literal)
		if err != nil {
			return nil, &DefinitionError{Method: name, Chain: i, Err: err}
		}
		specs = append(specs, spec)
	}
	return &Method{name: name, specs: specs}, nil
}

func MustDefine(name string, literals ...any) *Method {
	method, err := Define(name, literals...)
	if err != nil {
		panic(err)
	}
	return method
}

func (m *Method) Name() string {
	return m.name
}

// Chains returns the specifications in priority order.
func (m *Method) Chains() []*chain.Specification {
	return append([]*chain.Specification(nil), m.specs...)
}

// Call returns the first non-empty value across the chains, nil when every
// chain is empty.
func (m *Method) Call(receiver any, args ...any) (any, error) {
	value, _, err := resolve.First(receiver, m.specs, args...)
	return value, err
}

// Resolve is Call reporting which chain answered.
func (m *Method) Resolve(receiver any, args ...any) chain.Result {
	return m.resolveWith(defaultResolver, receiver, args)
}

// Trace is Resolve that also returns every accessor evaluation, in the
// order the chains were walked.
func (m *Method) Trace(receiver any, args ...any) (chain.Result, []resolve.Step) {
	var steps []resolve.Step
	resolver := resolve.New(resolve.WithObserver(func(step resolve.Step) {
		steps = append(steps, step)
	}))
	return m.resolveWith(resolver, receiver, args), steps
}

func (m *Method) resolveWith(resolver *resolve.Resolver, receiver any, args []any) chain.Result {
	value, index, err := resolver.First(receiver, m.specs, args...)
	switch {
	case err != nil:
		return chain.Failed(err, index)
	case index < 0:
		return chain.NotFound()
	}
	return chain.Found(value, index)
}

// CallMany resolves the method against every receiver, results in input
// order. Receivers not reached before ctx is done fail with ctx.Err().
func (m *Method) CallMany(ctx context.Context, receivers []any, args ...any) []chain.Result {
	results := make([]chain.Result, len(receivers))
	workers := GetWorkerMaxCount(ctx, runtime.NumCPU())

	indexes := make(chan int)
	wg := &sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = m.Resolve(receivers[i], args...)
			}
		}()
	}

	next := 0
feed:
	for ; next < len(receivers); next++ {
		if ctx.Err() != nil {
			break
		}
		select {
		case indexes <- next:
		case <-ctx.Done():
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	for i := next; i < len(receivers); i++ {
		results[i] = chain.Failed(ctx.Err(), -1)
	}
	return results
}

// Values collects the values of batch results in order, nil for empty ones,
// joining every failure into one error.
func Values[T chain.WithError](results []T) ([]any, error) {
	values := make([]any, len(results))
	var errs []error
	for i, result := range results {
		if err := result.Err(); err != nil {
			errs = append(errs, fmt.Errorf("receiver %d: %w", i, err))
			continue
		}
		values[i] = result.Value()
	}
	return values, errors.Join(errs...)
}
