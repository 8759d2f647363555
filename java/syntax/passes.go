package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dhamidi/weave/handler"
)

var (
	_ handler.Method = (*Method)(nil)
	_ handler.Site   = (*Site)(nil)
	_ handler.Passes = Passes{}
)

// Passes provides the body rewrites handlers run before moving statements
// into generated code.
type Passes struct{}

type visitorFunc func(m *Method) error

func (f visitorFunc) Visit(m handler.Method) error {
	method, ok := m.(*Method)
	if !ok {
		return ErrForeignMethod
	}
	return f(method)
}

// QualifyThis rewrites every unqualified "this" that refers to the
// method's own instance into "typeName.this". Nested type bodies have their
// own "this" and are skipped; lambda bodies share the method's and are not.
func (Passes) QualifyThis(typeName string) handler.Visitor {
	return visitorFunc(func(m *Method) error {
		body := m.bodyNode()
		if body == nil {
			return nil
		}
		var unqualifiable bool
		walk(body, func(n *sitter.Node) bool {
			if isTypeScope(n) {
				return false
			}
			if n.Type() != "this" || !n.IsNamed() || isQualifiedThis(n) {
				return true
			}
			if typeName == "" {
				unqualifiable = true
				return false
			}
			m.addEdit(n, typeName+".this")
			return true
		})
		if unqualifiable {
			return handler.ErrUnqualifiableThis
		}
		return nil
	})
}

// ReturnValue rewrites every bare "return;" of the method into
// "return expr;". Returns of lambdas and nested types are left alone.
func (Passes) ReturnValue(expr string) handler.Visitor {
	return visitorFunc(func(m *Method) error {
		body := m.bodyNode()
		if body == nil {
			return nil
		}
		walk(body, func(n *sitter.Node) bool {
			if isTypeScope(n) || n.Type() == "lambda_expression" {
				return false
			}
			if n.Type() == "return_statement" && !hasValue(n) {
				m.addEdit(n, "return "+expr+";")
				return false
			}
			return true
		})
		return nil
	})
}

func isTypeScope(n *sitter.Node) bool {
	switch n.Type() {
	case "class_body", "interface_body", "enum_body", "annotation_type_body",
		"class_declaration", "interface_declaration", "enum_declaration",
		"record_declaration", "annotation_type_declaration":
		return true
	}
	return false
}

// isQualifiedThis reports "Outer.this", where "this" is the field of a
// field access.
func isQualifiedThis(n *sitter.Node) bool {
	parent := n.Parent()
	if parent == nil || parent.Type() != "field_access" {
		return false
	}
	field := parent.ChildByFieldName("field")
	return field != nil && field.StartByte() == n.StartByte() && field.EndByte() == n.EndByte()
}

func hasValue(ret *sitter.Node) bool {
	for i := 0; i < int(ret.NamedChildCount()); i++ {
		if !isComment(ret.NamedChild(i)) {
			return true
		}
	}
	return false
}
