package check

import (
	"fmt"
	"strings"

	"astron-hq/astroncheck/pkg/document"
)

// Problem is a single constraint violation reported by a Checker.
// The validator attaches the document path and source location.
type Problem struct {
	Message string

	// kind is set when the value has the wrong shape altogether
	kind bool
}

// IsKind reports whether the problem is a shape mismatch (wrong node kind or
// unparseable value) rather than a failed range or format constraint.
func (p *Problem) IsKind() bool {
	return p != nil && p.kind
}

// Problemf formats a Problem.
func Problemf(format string, args ...any) *Problem {
	return &Problem{Message: fmt.Sprintf(format, args...)}
}

// Checker is a pure predicate over a document node.
// It returns nil when the value is acceptable.
type Checker func(n *document.Node) *Problem

// Run applies every checker to n and returns the problems in order.
// A kind checker that fails stops the chain, because the constraints that
// follow it assume the value already has the right shape.
func Run(n *document.Node, checkers ...Checker) []*Problem {
	var problems []*Problem
	for _, c := range checkers {
		p := c(n)
		if p == nil {
			continue
		}
		problems = append(problems, p)
		if p.kind {
			break
		}
	}
	return problems
}

// String accepts any non-null scalar.
func String() Checker {
	return func(n *document.Node) *Problem {
		if !n.IsScalar() {
			return kindProblem("must be a string, got %s", n.Describe())
		}
		return nil
	}
}

// Bool accepts YAML boolean scalars.
func Bool() Checker {
	return func(n *document.Node) *Problem {
		if !n.IsScalar() {
			return kindProblem("must be a boolean, got %s", n.Describe())
		}
		switch strings.ToLower(n.Value) {
		case "true", "false", "yes", "no", "on", "off":
			return nil
		}
		return kindProblem("must be a boolean, got %q", n.Value)
	}
}

// Enum accepts string scalars equal to one of values.
func Enum(values ...string) Checker {
	return func(n *document.Node) *Problem {
		if !n.IsScalar() {
			return kindProblem("must be one of [%s], got %s", strings.Join(values, ", "), n.Describe())
		}
		for _, v := range values {
			if n.Value == v {
				return nil
			}
		}
		return Problemf("must be one of [%s], got %q", strings.Join(values, ", "), n.Value)
	}
}

// FilePath accepts a non-empty string. Whether the file exists is not checked.
func FilePath() Checker {
	return func(n *document.Node) *Problem {
		if !n.IsScalar() {
			return kindProblem("must be a file path, got %s", n.Describe())
		}
		if strings.TrimSpace(n.Value) == "" {
			return kindProblem("file path must not be empty")
		}
		return nil
	}
}

// Mapping accepts mapping nodes.
func Mapping() Checker {
	return func(n *document.Node) *Problem {
		if !n.IsMapping() {
			return kindProblem("must be a mapping, got %s", n.Describe())
		}
		return nil
	}
}

// List accepts sequence nodes, including empty ones.
func List() Checker {
	return func(n *document.Node) *Problem {
		if !n.IsSequence() {
			return kindProblem("must be a list, got %s", n.Describe())
		}
		return nil
	}
}

// NonEmptyList accepts sequences with at least one element.
// Elements are validated separately against the element field spec.
func NonEmptyList() Checker {
	return func(n *document.Node) *Problem {
		if !n.IsSequence() {
			return kindProblem("must be a list, got %s", n.Describe())
		}
		if len(n.Items) == 0 {
			return kindProblem("list must not be empty")
		}
		return nil
	}
}

// kindProblem marks a Problem that ends the checker chain.
func kindProblem(format string, args ...any) *Problem {
	p := Problemf(format, args...)
	p.kind = true
	return p
}
