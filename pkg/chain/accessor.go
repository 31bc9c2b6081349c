package chain

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/viant/tagly/format/text"
	"github.com/viant/xunsafe"
)

// FieldMarker prefixes accessor names that read stored fields.
const FieldMarker = '@'

type Kind int

const (
	KindCall Kind = iota
	KindField
)

func (k Kind) String() string {
	if k == KindField {
		return "field"
	}
	return "call"
}

// Classify returns the accessor kind implied by the name's lexical form.
func Classify(name string) Kind {
	if strings.HasPrefix(name, string(FieldMarker)) {
		return KindField
	}
	return KindCall
}

// Accessor is a single lookup step evaluated against a receiver.
type Accessor interface {
	// Name returns the accessor name as written, marker included
	Name() string
	// Kind returns whether the accessor calls a method or reads a field
	Kind() Kind
	// Evaluate looks the accessor up on receiver. Field accessors ignore args.
	Evaluate(receiver any, args []any) (any, error)
}

// NewAccessor classifies name once and returns the matching strategy.
func NewAccessor(name string) (Accessor, error) {
	if name == "" {
		return nil, &InvalidSpecificationError{Reason: "accessor name is empty"}
	}
	if Classify(name) == KindCall {
		return &callAccessor{name: name, identifiers: identifiers(name)}, nil
	}
	field := name[1:]
	if field == "" {
		return nil, &InvalidSpecificationError{Reason: fmt.Sprintf("field accessor %q has no name", name)}
	}
	return &fieldAccessor{name: name, field: field, identifiers: identifiers(field)}, nil
}

// identifiers lists Go identifiers an accessor name may refer to: the name
// itself, its exported UpperCamel form, then its lowerCamel form.
func identifiers(name string) []string {
	result := []string{name}
	add := func(candidate string) {
		if candidate == "" {
			return
		}
		for _, existing := range result {
			if existing == candidate {
				return
			}
		}
		result = append(result, candidate)
	}
	caseFormat := text.DetectCaseFormat(name)
	add(caseFormat.Format(name, text.CaseFormatUpperCamel))
	first, size := utf8.DecodeRuneInString(name)
	add(string(unicode.ToUpper(first)) + name[size:])
	add(caseFormat.Format(name, text.CaseFormatLowerCamel))
	return result
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

type callAccessor struct {
	name        string
	identifiers []string
}

func (a *callAccessor) Name() string { return a.name }

func (a *callAccessor) Kind() Kind { return KindCall }

func (a *callAccessor) Evaluate(receiver any, args []any) (any, error) {
	if caller, ok := receiver.(Caller); ok {
		return caller.CallAccessor(a.name, args)
	}
	method := a.method(receiver)
	if !method.IsValid() {
		return nil, &MissingAccessorError{Kind: KindCall, Name: a.name, Receiver: receiverName(receiver)}
	}
	in, err := a.arguments(receiver, method.Type(), args)
	if err != nil {
		return nil, err
	}
	return results(method.Call(in))
}

// method finds the bound method; pointer receiver methods are reachable on
// plain struct values through a copy.
func (a *callAccessor) method(receiver any) reflect.Value {
	value := reflect.ValueOf(receiver)
	if !value.IsValid() {
		return reflect.Value{}
	}
	for _, name := range a.identifiers {
		if method := value.MethodByName(name); method.IsValid() {
			return method
		}
	}
	if value.Kind() == reflect.Ptr {
		return reflect.Value{}
	}
	ptr := reflect.New(value.Type())
	ptr.Elem().Set(value)
	for _, name := range a.identifiers {
		if method := ptr.MethodByName(name); method.IsValid() {
			return method
		}
	}
	return reflect.Value{}
}

func (a *callAccessor) arguments(receiver any, fn reflect.Type, args []any) ([]reflect.Value, error) {
	fixed := fn.NumIn()
	if fn.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, a.arityError(receiver, fmt.Sprintf("want at least %d, got %d", fixed, len(args)))
		}
	} else if len(args) != fixed {
		return nil, a.arityError(receiver, fmt.Sprintf("want %d, got %d", fixed, len(args)))
	}
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var want reflect.Type
		if i >= fixed {
			want = fn.In(fixed).Elem()
		} else {
			want = fn.In(i)
		}
		value, ok := argumentValue(arg, want)
		if !ok {
			return nil, a.arityError(receiver, fmt.Sprintf("argument %d: %T is not assignable to %v", i, arg, want))
		}
		in[i] = value
	}
	return in, nil
}

func (a *callAccessor) arityError(receiver any, reason string) error {
	return &ArityError{Name: a.name, Receiver: receiverName(receiver), Reason: reason}
}

func argumentValue(arg any, want reflect.Type) (reflect.Value, bool) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
			return reflect.Zero(want), true
		}
		return reflect.Value{}, false
	}
	value := reflect.ValueOf(arg)
	if !value.Type().AssignableTo(want) {
		return reflect.Value{}, false
	}
	return value, true
}

// results maps method outputs to a value: a trailing error is returned as is,
// the first remaining output is the value, no output means empty.
func results(out []reflect.Value) (any, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			return nil, out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0].Interface(), nil
}

type fieldAccessor struct {
	name        string
	field       string
	identifiers []string
	fields      sync.Map // reflect.Type -> *xunsafe.Field
}

func (a *fieldAccessor) Name() string { return a.name }

func (a *fieldAccessor) Kind() Kind { return KindField }

func (a *fieldAccessor) Evaluate(receiver any, _ []any) (any, error) {
	if reader, ok := receiver.(FieldReader); ok {
		if value, ok := reader.ReadField(a.field); ok {
			return value, nil
		}
		return nil, a.missing(receiver)
	}
	value := reflect.ValueOf(receiver)
	switch {
	case !value.IsValid():
		return nil, a.missing(receiver)
	case value.Kind() == reflect.Map:
		return a.mapValue(receiver, value)
	case value.Kind() == reflect.Struct:
		ptr := reflect.New(value.Type())
		ptr.Elem().Set(value)
		value = ptr
	case value.Kind() == reflect.Ptr && value.Type().Elem().Kind() == reflect.Struct:
		if value.IsNil() {
			return nil, a.missing(receiver)
		}
	default:
		return nil, a.missing(receiver)
	}
	field := a.lookup(value.Type().Elem())
	if field == nil {
		return nil, a.missing(receiver)
	}
	return field.Interface(xunsafe.AsPointer(value.Interface())), nil
}

// mapValue reads a string keyed map; an absent key is empty, not an error.
func (a *fieldAccessor) mapValue(receiver any, value reflect.Value) (any, error) {
	keyType := value.Type().Key()
	if keyType.Kind() != reflect.String {
		return nil, a.missing(receiver)
	}
	item := value.MapIndex(reflect.ValueOf(a.field).Convert(keyType))
	if !item.IsValid() {
		return nil, nil
	}
	return item.Interface(), nil
}

func (a *fieldAccessor) lookup(structType reflect.Type) *xunsafe.Field {
	if cached, ok := a.fields.Load(structType); ok {
		return cached.(*xunsafe.Field)
	}
	for _, name := range a.identifiers {
		if field := xunsafe.FieldByName(structType, name); field != nil {
			a.fields.Store(structType, field)
			return field
		}
	}
	return nil
}

func (a *fieldAccessor) missing(receiver any) error {
	return &MissingAccessorError{Kind: KindField, Name: a.name, Receiver: receiverName(receiver)}
}
