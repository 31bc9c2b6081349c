package chain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	name     string
	Email    string
	nickname *string
}

func (a *account) Name() string { return a.name }

func (a *account) FullName() string { return a.name + " Doe" }

func (a *account) Greeting(prefix string) string { return prefix + ", " + a.name }

func (a *account) Join(sep string, parts ...string) string { return strings.Join(parts, sep) }

func (a *account) Lookup() (string, error) { return "", errLookup }

func (a *account) Touch() {}

func (a account) Label() string { return "label:" + a.name }

var errLookup = errors.New("lookup failed")

type responder struct {
	calls []string
}

func (r *responder) CallAccessor(name string, args []any) (any, error) {
	r.calls = append(r.calls, name)
	return len(args), nil
}

func (r *responder) ReadField(name string) (any, bool) {
	if name == "known" {
		return "stored", true
	}
	return nil, false
}

func mustAccessor(t *testing.T, name string) Accessor {
	t.Helper()
	accessor, err := NewAccessor(name)
	require.NoError(t, err)
	return accessor
}

func TestClassify(t *testing.T) {
	t.Parallel()
	assert.Equal(t, KindCall, Classify("name"))
	assert.Equal(t, KindField, Classify("@name"))
	assert.Equal(t, KindCall, Classify("na@me"))
	assert.Equal(t, "field", KindField.String())
	assert.Equal(t, "call", KindCall.String())
}

func TestNewAccessor_Invalid(t *testing.T) {
	t.Parallel()
	_, err := NewAccessor("")
	assert.ErrorIs(t, err, ErrInvalidSpecification)

	_, err = NewAccessor("@")
	assert.ErrorIs(t, err, ErrInvalidSpecification)
}

func TestCallAccessor_ResolvesExportedForms(t *testing.T) {
	t.Parallel()
	acct := &account{name: "Alice"}

	value, err := mustAccessor(t, "name").Evaluate(acct, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice", value)

	value, err = mustAccessor(t, "Name").Evaluate(acct, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice", value)

	value, err = mustAccessor(t, "full_name").Evaluate(acct, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice Doe", value)

	value, err = mustAccessor(t, "fullName").Evaluate(acct, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice Doe", value)
}

func TestCallAccessor_Arguments(t *testing.T) {
	t.Parallel()
	acct := &account{name: "Alice"}

	value, err := mustAccessor(t, "greeting").Evaluate(acct, []any{"Hi"})
	require.NoError(t, err)
	assert.Equal(t, "Hi, Alice", value)

	value, err = mustAccessor(t, "join").Evaluate(acct, []any{"-", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "a-b", value)

	value, err = mustAccessor(t, "join").Evaluate(acct, []any{","})
	require.NoError(t, err)
	assert.Equal(t, "", value)
}

func TestCallAccessor_ArityMismatch(t *testing.T) {
	t.Parallel()
	acct := &account{name: "Alice"}

	_, err := mustAccessor(t, "greeting").Evaluate(acct, nil)
	assert.ErrorIs(t, err, ErrArity)

	_, err = mustAccessor(t, "greeting").Evaluate(acct, []any{42})
	assert.ErrorIs(t, err, ErrArity)

	_, err = mustAccessor(t, "name").Evaluate(acct, []any{"unexpected"})
	var arityErr *ArityError
	require.ErrorAs(t, err, &arityErr)
	assert.Equal(t, "name", arityErr.Name)
	assert.Equal(t, "*chain.account", arityErr.Receiver)

	_, err = mustAccessor(t, "join").Evaluate(acct, nil)
	assert.ErrorIs(t, err, ErrArity)
}

func TestCallAccessor_ReturnShapes(t *testing.T) {
	t.Parallel()
	acct := &account{name: "Alice"}

	_, err := mustAccessor(t, "lookup").Evaluate(acct, nil)
	assert.ErrorIs(t, err, errLookup)

	value, err := mustAccessor(t, "touch").Evaluate(acct, nil)
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestCallAccessor_ValueReceivers(t *testing.T) {
	t.Parallel()
	value, err := mustAccessor(t, "label").Evaluate(account{name: "Bob"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "label:Bob", value)

	value, err = mustAccessor(t, "name").Evaluate(account{name: "Bob"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bob", value)
}

func TestCallAccessor_Missing(t *testing.T) {
	t.Parallel()
	_, err := mustAccessor(t, "unknown").Evaluate(&account{}, nil)
	var missing *MissingAccessorError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, KindCall, missing.Kind)
	assert.ErrorIs(t, err, ErrMissingAccessor)

	_, err = mustAccessor(t, "name").Evaluate(nil, nil)
	assert.ErrorIs(t, err, ErrMissingAccessor)
}

func TestCallAccessor_Caller(t *testing.T) {
	t.Parallel()
	r := &responder{}
	value, err := mustAccessor(t, "anything").Evaluate(r, []any{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, value)
	assert.Equal(t, []string{"anything"}, r.calls)
}

func TestFieldAccessor_Structs(t *testing.T) {
	t.Parallel()
	acct := &account{name: "Alice", Email: "alice@example.com"}

	for _, args := range [][]any{nil, {"x"}, {1, 2, 3}} {
		value, err := mustAccessor(t, "@name").Evaluate(acct, args)
		require.NoError(t, err)
		assert.Equal(t, "Alice", value)
	}

	value, err := mustAccessor(t, "@email").Evaluate(acct, nil)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", value)

	value, err = mustAccessor(t, "@name").Evaluate(account{name: "Bob"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bob", value)

	value, err = mustAccessor(t, "@nickname").Evaluate(acct, nil)
	require.NoError(t, err)
	assert.True(t, IsEmpty(value))

	_, err = mustAccessor(t, "@unknown").Evaluate(acct, nil)
	assert.ErrorIs(t, err, ErrMissingAccessor)

	_, err = mustAccessor(t, "@name").Evaluate(42, nil)
	assert.ErrorIs(t, err, ErrMissingAccessor)

	var nilAccount *account
	_, err = mustAccessor(t, "@name").Evaluate(nilAccount, nil)
	assert.ErrorIs(t, err, ErrMissingAccessor)
}

func TestFieldAccessor_Maps(t *testing.T) {
	t.Parallel()
	stored := map[string]any{"name": "Alice", "active": false}

	value, err := mustAccessor(t, "@name").Evaluate(stored, []any{"ignored"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", value)

	value, err = mustAccessor(t, "@active").Evaluate(stored, nil)
	require.NoError(t, err)
	assert.Equal(t, false, value)

	value, err = mustAccessor(t, "@missing").Evaluate(stored, nil)
	require.NoError(t, err)
	assert.Nil(t, value)

	_, err = mustAccessor(t, "@name").Evaluate(map[int]string{1: "x"}, nil)
	assert.ErrorIs(t, err, ErrMissingAccessor)
}

func TestFieldAccessor_FieldReader(t *testing.T) {
	t.Parallel()
	value, err := mustAccessor(t, "@known").Evaluate(&responder{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "stored", value)

	_, err = mustAccessor(t, "@other").Evaluate(&responder{}, nil)
	assert.ErrorIs(t, err, ErrMissingAccessor)
}
