package loader

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ib-77/delegate/pkg/chain/delegate"
)

// Definition is one delegated method as written in a document.
type Definition struct {
	Name   string
	Chains []any
	Lines  []int
}

type document struct {
	Methods []methodNode `yaml:"methods"`
}

type methodNode struct {
	Name   string      `yaml:"name"`
	Chains []yaml.Node `yaml:"chains"`
}

func LoadFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read definitions %v", path)
	}
	definitions, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load definitions %v", path)
	}
	return definitions, nil
}

// Parse decodes a document; chain literals are only validated by Define.
func Parse(data []byte) ([]Definition, error) {
	doc := &document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode definitions")
	}
	definitions := make([]Definition, 0, len(doc.Methods))
	for _, method := range doc.Methods {
		definition := Definition{Name: method.Name}
		for i := range method.Chains {
			node := &method.Chains[i]
			var literal any
			if err := node.Decode(&literal); err != nil {
				return nil, errors.Wrapf(err, "method %v: line %d", method.Name, node.Line)
			}
			definition.Chains = append(definition.Chains, literal)
			definition.Lines = append(definition.Lines, node.Line)
		}
		definitions = append(definitions, definition)
	}
	return definitions, nil
}

// Define builds the method, prefixing errors with the offending chain's line.
func (d Definition) Define() (*delegate.Method, error) {
	method, err := delegate.Define(d.Name, d.Chains...)
	if err == nil {
		return method, nil
	}
	var defErr *delegate.DefinitionError
	if errors.As(err, &defErr) && defErr.Chain >= 0 && defErr.Chain < len(d.Lines) {
		return nil, errors.Wrapf(err, "line %d", d.Lines[defErr.Chain])
	}
	return nil, err
}

// Populate defines every definition into table, stopping at the first error.
func Populate(table *delegate.Table, definitions []Definition) error {
	for _, definition := range definitions {
		method, err := definition.Define()
		if err != nil {
			return err
		}
		if err = table.Attach(method); err != nil {
			return err
		}
	}
	return nil
}

// Check defines every definition into a scratch table and returns all errors.
func Check(definitions []Definition) (*delegate.Table, []error) {
	table := delegate.NewTable()
	var problems []error
	for _, definition := range definitions {
		method, err := definition.Define()
		if err == nil {
			err = table.Attach(method)
		}
		if err != nil {
			problems = append(problems, err)
		}
	}
	return table, problems
}
