package chain

import (
	"fmt"
	"strings"
)

// Literal is the raw nested form of a chain: one key per level whose value
// is either a terminal accessor name or the next Literal.
type Literal map[string]any

// Path builds the literal for a flat list of accessor names, so
// Path("current", "account", "name") is {current: {account: name}}.
// Fewer than two names produce a literal that Parse rejects.
func Path(names ...string) Literal {
	switch len(names) {
	case 0:
		return Literal{}
	case 1:
		return Literal{names[0]: nil}
	}
	var tail any = names[len(names)-1]
	for i := len(names) - 2; i >= 0; i-- {
		tail = Literal{names[i]: tail}
	}
	return tail.(Literal)
}

// Node is one level of a chain: an accessor followed by either a terminal
// accessor or the next level, never both.
type Node struct {
	accessor Accessor
	terminal Accessor
	next     *Node
}

func (n *Node) Accessor() Accessor { return n.accessor }

// Terminal returns the final accessor of a leaf node, nil otherwise.
func (n *Node) Terminal() Accessor { return n.terminal }

// Next returns the nested level, nil for a leaf node.
func (n *Node) Next() *Node { return n.next }

func (n *Node) IsLeaf() bool { return n.next == nil }

// Specification is a validated chain. It is immutable and safe for
// concurrent use.
type Specification struct {
	root *Node
}

// Parse validates literal and builds its Specification. Every violation is
// reported as an *InvalidSpecificationError.
func Parse(literal any) (*Specification, error) {
	root, err := parseNode(literal, nil)
	if err != nil {
		return nil, err
	}
	return &Specification{root: root}, nil
}

// MustParse is like Parse but panics on a malformed literal.
func MustParse(literal any) *Specification {
	spec, err := Parse(literal)
	if err != nil {
		panic(err)
	}
	return spec
}

// Validate reports whether literal is a well formed chain.
func Validate(literal any) error {
	_, err := parseNode(literal, nil)
	return err
}

func Valid(literal any) bool {
	return Validate(literal) == nil
}

func (s *Specification) Root() *Node { return s.root }

// Accessors returns every accessor in walk order, terminal last.
func (s *Specification) Accessors() []Accessor {
	var result []Accessor
	for node := s.root; node != nil; node = node.next {
		result = append(result, node.accessor)
		if node.terminal != nil {
			result = append(result, node.terminal)
		}
	}
	return result
}

func (s *Specification) Depth() int {
	return len(s.Accessors())
}

// Literal rebuilds a fresh literal equivalent to the specification.
func (s *Specification) Literal() Literal {
	names := make([]string, 0, s.Depth())
	for _, accessor := range s.Accessors() {
		names = append(names, accessor.Name())
	}
	return Path(names...)
}

func (s *Specification) String() string {
	builder := &strings.Builder{}
	writeNode(builder, s.root)
	return builder.String()
}

func writeNode(builder *strings.Builder, node *Node) {
	builder.WriteString("{")
	builder.WriteString(node.accessor.Name())
	builder.WriteString(": ")
	if node.terminal != nil {
		builder.WriteString(node.terminal.Name())
	} else {
		writeNode(builder, node.next)
	}
	builder.WriteString("}")
}

type entry struct {
	key   string
	value any
}

func parseNode(literal any, path []string) (*Node, error) {
	entries, ok, err := entriesOf(literal, path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &InvalidSpecificationError{Path: path, Reason: fmt.Sprintf("expected a mapping, got %T", literal)}
	}
	if len(entries) != 1 {
		return nil, &InvalidSpecificationError{Path: path, Reason: fmt.Sprintf("expected exactly one key, got %d", len(entries))}
	}
	key, value := entries[0].key, entries[0].value
	path = append(path[:len(path):len(path)], key)

	node := &Node{}
	if node.accessor, err = accessorAt(key, path); err != nil {
		return nil, err
	}
	if name, isName := value.(string); isName {
		if node.terminal, err = accessorAt(name, path); err != nil {
			return nil, err
		}
		return node, nil
	}
	if _, isMapping, _ := entriesOf(value, path); !isMapping {
		return nil, &InvalidSpecificationError{Path: path, Reason: fmt.Sprintf("value must be a name or a mapping, got %T", value)}
	}
	if node.next, err = parseNode(value, path); err != nil {
		return nil, err
	}
	return node, nil
}

func accessorAt(name string, path []string) (Accessor, error) {
	accessor, err := NewAccessor(name)
	if err != nil {
		if specErr, ok := err.(*InvalidSpecificationError); ok {
			specErr.Path = path
		}
		return nil, err
	}
	return accessor, nil
}

// entriesOf lists the entries of a supported mapping type; ok is false when
// literal is not a mapping at all.
func entriesOf(literal any, path []string) ([]entry, bool, error) {
	var result []entry
	switch actual := literal.(type) {
	case Literal:
		for k, v := range actual {
			result = append(result, entry{key: k, value: v})
		}
	case map[string]any:
		for k, v := range actual {
			result = append(result, entry{key: k, value: v})
		}
	case map[string]string:
		for k, v := range actual {
			result = append(result, entry{key: k, value: v})
		}
	case map[any]any:
		for k, v := range actual {
			key, isName := k.(string)
			if !isName {
				return nil, true, &InvalidSpecificationError{Path: path, Reason: fmt.Sprintf("key %v is %T, not a name", k, k)}
			}
			result = append(result, entry{key: key, value: v})
		}
	default:
		return nil, false, nil
	}
	return result, true, nil
}
