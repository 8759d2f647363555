// Package handler rewrites the bodies of annotated methods.
//
// A handler validates the method an annotation is attached to, runs the
// host's self-reference rewrite over its body, synthesizes a replacement
// body with package ast and installs it through the Method facade. Each
// handled site ends in one of three states: done, rejected with a usage
// error, or deferred to a later pass because the method is not fully parsed
// yet.
package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/weave/java/ast"
)

// Handler transforms methods carrying one annotation type.
type Handler interface {
	// Annotation is the qualified name of the handled annotation type.
	Annotation() string

	// Handle runs one pass over site. Usage problems and deferral are
	// reported through the Outcome; a non-nil error means the handler
	// itself failed and the method was left untouched.
	Handle(site Site) (Outcome, error)
}

// ErrUnqualifiableThis is returned by a QualifyThis visitor when a method of
// an anonymous type refers to its own instance.
var ErrUnqualifiableThis = errors.New("unqualified this in anonymous type")

// generatedPrefix starts every generated identifier. User code following
// Java naming conventions never declares names with it.
const generatedPrefix = "$"

// syntheticName derives the local variable name holding the generated unit
// of work, e.g. ("test2", "runnable") -> "$test2Runnable".
func syntheticName(method, suffix string) string {
	return generatedPrefix + camelCase(method, suffix)
}

func camelCase(first string, rest ...string) string {
	var sb strings.Builder
	sb.WriteString(first)
	for _, part := range rest {
		r, size := utf8.DecodeRuneInString(part)
		if size == 0 {
			continue
		}
		sb.WriteRune(unicode.ToUpper(r))
		sb.WriteString(part[size:])
	}
	return sb.String()
}

// pipeline is the state machine shared by every handler. Handlers differ
// only in the extra rewrites they run and in the body they synthesize.
type pipeline struct {
	annotation string
	passes     Passes

	// rewrites returns visitors run after self-reference qualification.
	rewrites func(m Method) []Visitor

	synthesize func(m Method) (ast.Builder, error)
}

func (p pipeline) run(site Site) (Outcome, error) {
	mc := newMachine()

	mc.enter(StateCheckingShape)
	m, ok := site.MethodOf()
	if !ok {
		return mc.reject(canBeUsedOnMethodOnly(p.annotation)), nil
	}
	if !m.WasCompletelyParsed() {
		return mc.finish(StateDeferred), nil
	}
	if m.IsAbstract() || m.IsEmpty() {
		return mc.reject(canBeUsedOnConcreteMethodOnly(p.annotation)), nil
	}

	mc.enter(StateRewritingSelf)
	visitors := []Visitor{p.passes.QualifyThis(m.EnclosingType())}
	if p.rewrites != nil {
		visitors = append(visitors, p.rewrites(m)...)
	}
	for _, v := range visitors {
		if err := v.Visit(m); err != nil {
			if errors.Is(err, ErrUnqualifiableThis) {
				return mc.reject(cannotQualifyThis(p.annotation)), nil
			}
			return Outcome{}, fmt.Errorf("rewrite %s: %w", m.Name(), err)
		}
	}

	mc.enter(StateSynthesizing)
	b, err := p.synthesize(m)
	if err != nil {
		return Outcome{}, fmt.Errorf("synthesize %s: %w", m.Name(), err)
	}
	body, err := b.Build()
	if err != nil {
		return Outcome{}, fmt.Errorf("synthesize %s: %w", m.Name(), err)
	}
	if body.Kind() != ast.KindBlock {
		return Outcome{}, fmt.Errorf("synthesize %s: %w: body is a %s", m.Name(), ast.ErrConstruction, body.Kind())
	}

	mc.enter(StateInstalling)
	if err := m.ReplaceBody(body); err != nil {
		return Outcome{}, fmt.Errorf("install %s: %w", m.Name(), err)
	}
	if err := m.Rebuild(); err != nil {
		return Outcome{}, fmt.Errorf("rebuild %s: %w", m.Name(), err)
	}
	return mc.finish(StateDone), nil
}
