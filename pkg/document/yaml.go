package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultMaxFileSize is the file size limit used when ParseFile is given zero.
const DefaultMaxFileSize int64 = 1 << 20

// maxAliasDepth bounds alias expansion so self-referencing anchors terminate.
const maxAliasDepth = 64

// ParseError describes a configuration file that could not be parsed.
type ParseError struct {
	File string
	Line int
	Err  error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Unwrap returns the underlying parser error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// yaml.v3 reports syntax errors as "yaml: line N: ...".
var yamlLinePattern = regexp.MustCompile(`line (\d+)`)

// ParseFile reads and parses the configuration file at path.
// Files larger than maxSize bytes are rejected; zero selects DefaultMaxFileSize.
func ParseFile(path string, maxSize int64) (*Node, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access configuration file %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("configuration path %q is a directory", path)
	}
	if info.Size() > maxSize {
		return nil, fmt.Errorf("configuration file %q is %d bytes, limit is %d", path, info.Size(), maxSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	return ParseBytes(data, path)
}

// ParseBytes parses a YAML configuration held in memory.
// The file argument is only used for locations and error messages.
// An empty document yields a null root node.
func ParseBytes(data []byte, file string) (*Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return &Node{Kind: KindNull, Tag: TagNull, Location: Location{File: file}}, nil
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{File: file, Line: errorLine(err), Err: err}
	}

	return FromYAML(&root, file)
}

// FromYAML converts a decoded yaml.v3 node tree into a document tree.
// Document nodes are unwrapped, aliases are resolved and merge keys ("<<")
// are expanded into the enclosing mapping. Duplicate keys and documents
// that expand far beyond their source size through aliases are rejected
// with a *ParseError.
func FromYAML(n *yaml.Node, file string) (*Node, error) {
	if n == nil {
		return Null(), nil
	}
	c := &converter{
		file:   file,
		budget: aliasExpansionFactor*countNodes(n) + minNodeBudget,
	}
	return c.convert(n, 0)
}

// Alias expansion may produce at most aliasExpansionFactor nodes per node
// written in the source, plus minNodeBudget.
const (
	aliasExpansionFactor = 4
	minNodeBudget        = 1024
)

// ErrAliasExpansion is wrapped by the ParseError returned for documents whose
// aliases expand beyond the node budget.
var ErrAliasExpansion = errors.New("document expands too much through aliases")

type converter struct {
	file string

	// budget is the number of nodes the converter may still produce.
	budget int
}

func (c *converter) location(n *yaml.Node) Location {
	return Location{File: c.file, Line: n.Line, Column: n.Column}
}

func (c *converter) errorf(line int, format string, args ...any) *ParseError {
	return &ParseError{File: c.file, Line: line, Err: fmt.Errorf(format, args...)}
}

func (c *converter) spend(n *yaml.Node) error {
	c.budget--
	if c.budget < 0 {
		return &ParseError{File: c.file, Line: n.Line, Err: ErrAliasExpansion}
	}
	return nil
}

func (c *converter) convert(n *yaml.Node, depth int) (*Node, error) {
	if depth > maxAliasDepth {
		return nil, c.errorf(n.Line, "alias nesting too deep")
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &Node{Kind: KindNull, Tag: TagNull, Location: c.location(n)}, nil
		}
		return c.convert(n.Content[0], depth)

	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, c.errorf(n.Line, "unresolved alias %q", n.Value)
		}
		return c.convert(n.Alias, depth+1)
	}

	if err := c.spend(n); err != nil {
		return nil, err
	}

	switch n.Kind {
	case yaml.ScalarNode:
		tag := n.ShortTag()
		if tag == TagNull {
			return &Node{Kind: KindNull, Tag: TagNull, Location: c.location(n)}, nil
		}
		return &Node{Kind: KindScalar, Tag: tag, Value: n.Value, Location: c.location(n)}, nil

	case yaml.SequenceNode:
		out := &Node{Kind: KindSequence, Location: c.location(n), Items: make([]*Node, 0, len(n.Content))}
		for _, item := range n.Content {
			child, err := c.convert(item, depth)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, child)
		}
		return out, nil

	case yaml.MappingNode:
		return c.convertMapping(n, depth)

	default:
		return nil, c.errorf(n.Line, "unsupported YAML node kind %d", n.Kind)
	}
}

func (c *converter) convertMapping(n *yaml.Node, depth int) (*Node, error) {
	out := &Node{Kind: KindMapping, Location: c.location(n)}
	var merged []Entry
	seen := make(map[string]int, len(n.Content)/2)

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valueNode := n.Content[i], n.Content[i+1]

		if keyNode.Kind == yaml.ScalarNode && keyNode.ShortTag() == "!!merge" {
			entries, err := c.mergeEntries(valueNode, depth)
			if err != nil {
				return nil, err
			}
			merged = append(merged, entries...)
			continue
		}

		if keyNode.Kind != yaml.ScalarNode {
			return nil, c.errorf(keyNode.Line, "mapping keys must be scalars")
		}
		if line, dup := seen[keyNode.Value]; dup {
			return nil, c.errorf(keyNode.Line, "mapping key %q already defined at line %d", keyNode.Value, line)
		}
		seen[keyNode.Value] = keyNode.Line

		value, err := c.convert(valueNode, depth)
		if err != nil {
			return nil, err
		}
		out.Entries = append(out.Entries, Entry{Key: keyNode.Value, KeyAt: c.location(keyNode), Value: value})
	}

	// Explicit keys win over merged ones.
	for _, e := range merged {
		if !out.Has(e.Key) {
			out.Entries = append(out.Entries, e)
		}
	}
	return out, nil
}

func (c *converter) mergeEntries(n *yaml.Node, depth int) ([]Entry, error) {
	src, err := c.convert(n, depth+1)
	if err != nil {
		return nil, err
	}
	switch src.Kind {
	case KindMapping:
		return src.Entries, nil
	case KindSequence:
		var entries []Entry
		for _, item := range src.Items {
			if !item.IsMapping() {
				return nil, c.errorf(n.Line, "merge list items must be mappings")
			}
			entries = append(entries, item.Entries...)
		}
		return entries, nil
	default:
		return nil, c.errorf(n.Line, "merge value must be a mapping")
	}
}

// countNodes returns the number of nodes written in the source, without
// following aliases.
func countNodes(n *yaml.Node) int {
	total := 1
	for _, child := range n.Content {
		total += countNodes(child)
	}
	return total
}

func errorLine(err error) int {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		err = errors.New(typeErr.Errors[0])
	}
	m := yamlLinePattern.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return 0
	}
	return line
}
