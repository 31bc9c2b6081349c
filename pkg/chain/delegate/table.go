package delegate

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrDuplicateMethod = errors.New("method already defined")
	ErrUnknownMethod   = errors.New("unknown method")
	ErrNilMethod       = errors.New("method is nil")
)

// Table is the method table of a presenter type. A presenter keeps one Table
// and forwards its methods through Invoke.
type Table struct {
	mux     sync.RWMutex
	methods map[string]*Method
	order   []string
}

func NewTable() *Table {
	return &Table{methods: map[string]*Method{}}
}

// Delegate defines a method and attaches it to the table.
func (t *Table) Delegate(name string, literals ...any) (*Method, error) {
	method, err := Define(name, literals...)
	if err != nil {
		return nil, err
	}
	if err = t.Attach(method); err != nil {
		return nil, err
	}
	return method, nil
}

func (t *Table) Attach(method *Method) error {
	if method == nil {
		return ErrNilMethod
	}
	t.mux.Lock()
	defer t.mux.Unlock()
	if _, ok := t.methods[method.name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateMethod, method.name)
	}
	t.methods[method.name] = method
	t.order = append(t.order, method.name)
	return nil
}

func (t *Table) Lookup(name string) (*Method, bool) {
	t.mux.RLock()
	defer t.mux.RUnlock()
	method, ok := t.methods[name]
	return method, ok
}

// Names returns method names in definition order.
func (t *Table) Names() []string {
	t.mux.RLock()
	defer t.mux.RUnlock()
	return append([]string(nil), t.order...)
}

func (t *Table) Invoke(receiver any, name string, args ...any) (any, error) {
	method, ok := t.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	return method.Call(receiver, args...)
}
