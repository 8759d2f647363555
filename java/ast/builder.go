// Package ast builds Java code fragments independently of any parser.
//
// Every constructor returns a value-type builder. Configuration methods
// return a new builder and never modify the receiver, so a partially
// configured builder can be shared and branched freely. Build turns a builder
// into an immutable *Node; it fails only when the configuration is
// structurally impossible, never because of Java semantics.
package ast

import (
	"errors"
	"fmt"
	"slices"
)

// ErrConstruction is wrapped by every error a Build step returns.
var ErrConstruction = errors.New("invalid fragment construction")

func constructionError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConstruction, fmt.Sprintf(format, args...))
}

// Builder is anything that yields a fragment. *Node implements it by
// returning itself.
type Builder interface {
	Build() (*Node, error)
}

// with returns a copy of list with items appended. The receiver's backing
// array is never shared with the result.
func with[T any](list []T, items ...T) []T {
	return append(slices.Clip(list), items...)
}

func buildOne(b Builder, role string, kinds ...Kind) (*Node, error) {
	if b == nil {
		return nil, constructionError("missing %s", role)
	}
	n, err := b.Build()
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, constructionError("missing %s", role)
	}
	if len(kinds) > 0 && !slices.Contains(kinds, n.kind) {
		return nil, constructionError("%s cannot be a %s", role, n.kind)
	}
	return n, nil
}

func buildOptional(b Builder, role string, kinds ...Kind) (*Node, error) {
	if b == nil {
		return nil, nil
	}
	return buildOne(b, role, kinds...)
}

func buildAll[B Builder](bs []B, role string, kinds ...Kind) ([]*Node, error) {
	nodes := make([]*Node, 0, len(bs))
	for i, b := range bs {
		n, err := buildOne(b, fmt.Sprintf("%s %d", role, i), kinds...)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func buildExpr(b Builder, role string) (*Node, error) {
	n, err := buildOne(b, role)
	if err != nil {
		return nil, err
	}
	if !n.kind.IsExpression() {
		return nil, constructionError("%s cannot be a %s", role, n.kind)
	}
	return n, nil
}

func buildStatement(b Builder, role string) (*Node, error) {
	n, err := buildOne(b, role)
	if err != nil {
		return nil, err
	}
	if !n.kind.IsStatement() {
		return nil, constructionError("%s cannot be a %s", role, n.kind)
	}
	if n.kind == KindClass && !n.local {
		return nil, constructionError("%s cannot be a member class", role)
	}
	return n, nil
}

func buildStatements(bs []Builder, role string) ([]*Node, error) {
	nodes := make([]*Node, 0, len(bs))
	for i, b := range bs {
		n, err := buildStatement(b, fmt.Sprintf("%s %d", role, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func buildExprs(bs []Builder, role string) ([]*Node, error) {
	nodes := make([]*Node, 0, len(bs))
	for i, b := range bs {
		n, err := buildExpr(b, fmt.Sprintf("%s %d", role, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// Fragments adapts built nodes to builders, e.g. to pass host statements to
// WithStatements.
func Fragments(nodes []*Node) []Builder {
	out := make([]Builder, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}
