package document

import "fmt"

// Kind identifies the shape of a node in a configuration document.
type Kind int

const (
	// KindNull is an empty value or an explicit null.
	KindNull Kind = iota
	// KindScalar is a single string, number or boolean value.
	KindScalar
	// KindSequence is an ordered list of nodes.
	KindSequence
	// KindMapping is an ordered set of key/value pairs.
	KindMapping
)

// String returns the name used in diagnostics ("a mapping", "a list", ...).
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "list"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Scalar tags as resolved by the YAML front end.
const (
	TagString = "!!str"
	TagInt    = "!!int"
	TagFloat  = "!!float"
	TagBool   = "!!bool"
	TagNull   = "!!null"
)

// Location is the source position of a node.
type Location struct {
	File   string `json:"file,omitempty"`   // Path to the configuration file
	Line   int    `json:"line,omitempty"`   // Line number (1-based)
	Column int    `json:"column,omitempty"` // Column number (1-based)
}

// String returns "file:line:column", or "line:column" for in-memory documents.
func (l Location) String() string {
	if !l.IsValid() {
		return "<unknown>"
	}
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// IsValid returns true if the location has line information.
func (l Location) IsValid() bool {
	return l.Line > 0
}

// Entry is one key/value pair of a mapping node.
type Entry struct {
	Key   string
	KeyAt Location
	Value *Node
}

// Node is a single node of a parsed configuration document.
// Only the fields matching Kind are populated.
type Node struct {
	Kind     Kind
	Tag      string  // scalar tag, e.g. "!!int"
	Value    string  // scalar text
	Entries  []Entry // mapping entries in document order
	Items    []*Node // sequence items
	Location Location
}

// Scalar returns a scalar node with the given tag and text.
func Scalar(tag, value string) *Node {
	return &Node{Kind: KindScalar, Tag: tag, Value: value}
}

// String returns a "!!str" scalar node.
func String(value string) *Node {
	return Scalar(TagString, value)
}

// Int returns a "!!int" scalar node.
func Int(value int64) *Node {
	return Scalar(TagInt, fmt.Sprintf("%d", value))
}

// Bool returns a "!!bool" scalar node.
func Bool(value bool) *Node {
	return Scalar(TagBool, fmt.Sprintf("%t", value))
}

// Null returns a null node.
func Null() *Node {
	return &Node{Kind: KindNull, Tag: TagNull}
}

// Seq returns a sequence node holding items.
func Seq(items ...*Node) *Node {
	return &Node{Kind: KindSequence, Items: items}
}

// Map returns a mapping node built from alternating key, value arguments.
// It panics on a malformed argument list; it exists for tests and fixtures.
func Map(kv ...any) *Node {
	if len(kv)%2 != 0 {
		panic("document.Map: odd number of arguments")
	}
	n := &Node{Kind: KindMapping}
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("document.Map: key %v is not a string", kv[i]))
		}
		n.Entries = append(n.Entries, Entry{Key: key, Value: valueNode(kv[i+1])})
	}
	return n
}

func valueNode(v any) *Node {
	switch val := v.(type) {
	case *Node:
		return val
	case string:
		return String(val)
	case int:
		return Int(int64(val))
	case int64:
		return Int(val)
	case bool:
		return Bool(val)
	case nil:
		return Null()
	default:
		panic(fmt.Sprintf("document.Map: unsupported value type %T", v))
	}
}

// IsMapping reports whether n is a mapping node.
func (n *Node) IsMapping() bool { return n != nil && n.Kind == KindMapping }

// IsSequence reports whether n is a sequence node.
func (n *Node) IsSequence() bool { return n != nil && n.Kind == KindSequence }

// IsScalar reports whether n is a scalar node.
func (n *Node) IsScalar() bool { return n != nil && n.Kind == KindScalar }

// IsNull reports whether n is missing or null.
func (n *Node) IsNull() bool { return n == nil || n.Kind == KindNull }

// Get returns the value stored under key in a mapping node.
// Duplicate keys resolve to the first occurrence.
func (n *Node) Get(key string) (*Node, bool) {
	if !n.IsMapping() {
		return nil, false
	}
	for _, e := range n.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Has reports whether a mapping node contains key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Keys returns the keys of a mapping node in document order.
func (n *Node) Keys() []string {
	if !n.IsMapping() {
		return nil
	}
	keys := make([]string, 0, len(n.Entries))
	for _, e := range n.Entries {
		keys = append(keys, e.Key)
	}
	return keys
}

// Describe returns a short description of the node kind for diagnostics.
func (n *Node) Describe() string {
	if n == nil {
		return "nothing"
	}
	switch n.Kind {
	case KindMapping:
		return "a mapping"
	case KindSequence:
		return "a list"
	case KindNull:
		return "null"
	default:
		return fmt.Sprintf("the scalar %q", n.Value)
	}
}
