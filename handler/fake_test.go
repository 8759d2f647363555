package handler

import (
	"errors"
	"strings"

	"github.com/dhamidi/weave/java/ast"
)

// fakeMethod is an in-memory Method recording every mutation.
type fakeMethod struct {
	name       string
	enclosing  string
	parsed     bool
	abstract   bool
	returnType string
	thrown     []string
	stmts      []string
	stmtsErr   error
	abrupt     bool

	body       *ast.Node
	replaced   int
	rebuilt    int
	replaceErr error
}

func newFakeMethod(name string, stmts ...string) *fakeMethod {
	return &fakeMethod{
		name:       name,
		enclosing:  "Window",
		parsed:     true,
		returnType: "void",
		stmts:      stmts,
	}
}

func (m *fakeMethod) Name() string              { return m.name }
func (m *fakeMethod) EnclosingType() string     { return m.enclosing }
func (m *fakeMethod) WasCompletelyParsed() bool { return m.parsed }
func (m *fakeMethod) IsAbstract() bool          { return m.abstract }
func (m *fakeMethod) IsEmpty() bool             { return len(m.stmts) == 0 }

func (m *fakeMethod) ReturnType() *ast.Node {
	n, err := ast.Type(m.returnType).Build()
	if err != nil {
		panic(err)
	}
	return n
}

func (m *fakeMethod) ThrownExceptions() []*ast.Node {
	var out []*ast.Node
	for _, t := range m.thrown {
		n, err := ast.Type(t).Build()
		if err != nil {
			panic(err)
		}
		out = append(out, n)
	}
	return out
}

func (m *fakeMethod) CompletesNormally() bool { return !m.abrupt }

func (m *fakeMethod) Statements() ([]*ast.Node, error) {
	if m.stmtsErr != nil {
		return nil, m.stmtsErr
	}
	var out []*ast.Node
	for _, s := range m.stmts {
		b := ast.Verbatim(s)
		if strings.HasPrefix(s, "//") {
			b = ast.Comment(s)
		}
		n, err := b.Build()
		if err != nil {
			panic(err)
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *fakeMethod) ReplaceBody(block *ast.Node) error {
	if m.replaceErr != nil {
		return m.replaceErr
	}
	m.replaced++
	m.body = block
	return nil
}

func (m *fakeMethod) Rebuild() error {
	if m.body == nil {
		return errors.New("rebuild before replace")
	}
	m.rebuilt++
	return nil
}

type fakeSite struct {
	method *fakeMethod
}

func (s fakeSite) MethodOf() (Method, bool) {
	if s.method == nil {
		return nil, false
	}
	return s.method, true
}

type visitorFunc func(m Method) error

func (f visitorFunc) Visit(m Method) error { return f(m) }

// fakePasses rewrites the fake method's statement text the way a host would
// rewrite its tree.
type fakePasses struct {
	qualified []string
}

func (p *fakePasses) QualifyThis(typeName string) Visitor {
	return visitorFunc(func(m Method) error {
		p.qualified = append(p.qualified, typeName)
		fm := m.(*fakeMethod)
		for i, s := range fm.stmts {
			if !strings.Contains(s, "this.") {
				continue
			}
			if typeName == "" {
				return ErrUnqualifiableThis
			}
			fm.stmts[i] = strings.ReplaceAll(s, "this.", typeName+".this.")
		}
		return nil
	})
}

func (p *fakePasses) ReturnValue(expr string) Visitor {
	return visitorFunc(func(m Method) error {
		fm := m.(*fakeMethod)
		for i, s := range fm.stmts {
			fm.stmts[i] = strings.ReplaceAll(s, "return;", "return "+expr+";")
		}
		return nil
	})
}
