package syntax

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dhamidi/weave/handler"
)

// Site is one annotation occurrence. It implements handler.Site.
type Site struct {
	file   *File
	node   *sitter.Node
	method *Method
}

// Name is the annotation type name as written, e.g. "SwingInvokeLater" or
// "lombok.SwingInvokeLater".
func (s *Site) Name() string {
	if name := s.node.ChildByFieldName("name"); name != nil {
		return s.file.text(name)
	}
	return ""
}

func (s *Site) Position() Position {
	return s.file.position(int(s.node.StartByte()))
}

// End is the position just past the annotation.
func (s *Site) End() Position {
	return s.file.position(int(s.node.EndByte()))
}

// Span is the byte range of the annotation itself.
func (s *Site) Span() Span {
	return nodeSpan(s.node)
}

// Owner is the byte range of the declaration the annotation is attached to.
func (s *Site) Owner() Span {
	return nodeSpan(s.owner())
}

func (s *Site) owner() *sitter.Node {
	parent := s.node.Parent()
	if parent != nil && parent.Type() == "modifiers" && parent.Parent() != nil {
		return parent.Parent()
	}
	if parent != nil {
		return parent
	}
	return s.node
}

// Key identifies the site by its declaration path, e.g.
// "Foo/test2(int)/@SwingInvokeLater#0". Keys survive edits elsewhere in the
// file, unlike byte offsets.
func (s *Site) Key() string {
	var path []string
	for n := s.owner(); n != nil; n = n.Parent() {
		if seg := s.file.segment(n); seg != "" {
			path = append(path, seg)
		}
	}
	var sb strings.Builder
	for i := len(path) - 1; i >= 0; i-- {
		sb.WriteString(path[i])
		sb.WriteString("/")
	}
	fmt.Fprintf(&sb, "@%s#%d", s.Name(), s.ordinal())
	return sb.String()
}

// ordinal counts earlier annotations with the same name on the same owner.
func (s *Site) ordinal() int {
	count := 0
	parent := s.node.Parent()
	if parent == nil {
		return 0
	}
	for i := 0; i < int(parent.NamedChildCount()); i++ {
		sibling := parent.NamedChild(i)
		if sibling.StartByte() >= s.node.StartByte() {
			break
		}
		if name := sibling.ChildByFieldName("name"); name != nil && s.file.text(name) == s.Name() {
			count++
		}
	}
	return count
}

// segment names n in a declaration path, or returns "" for nodes that are
// not declarations.
func (f *File) segment(n *sitter.Node) string {
	switch n.Type() {
	case "class_declaration", "interface_declaration", "enum_declaration",
		"record_declaration", "annotation_type_declaration":
		return f.text(n.ChildByFieldName("name"))
	case "method_declaration", "constructor_declaration":
		return f.text(n.ChildByFieldName("name")) + "(" + f.parameterTypes(n) + ")"
	case "object_creation_expression":
		if body := lastChildOfType(n, "class_body"); body != nil {
			return fmt.Sprintf("new %s#%d", f.text(n.ChildByFieldName("type")), f.anonymousIndex(n))
		}
	case "enum_constant":
		return f.text(n.ChildByFieldName("name"))
	}
	return ""
}

func (f *File) parameterTypes(decl *sitter.Node) string {
	params := decl.ChildByFieldName("parameters")
	if params == nil {
		return ""
	}
	var types []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		if typ := params.NamedChild(i).ChildByFieldName("type"); typ != nil {
			types = append(types, f.text(typ))
		}
	}
	return strings.Join(types, ",")
}

// anonymousIndex counts the anonymous classes of the same type that start
// before n inside its nearest enclosing declaration.
func (f *File) anonymousIndex(n *sitter.Node) int {
	scope := n.Parent()
	for scope != nil && f.segment(scope) == "" {
		scope = scope.Parent()
	}
	if scope == nil {
		return 0
	}
	typ := f.text(n.ChildByFieldName("type"))
	count := 0
	walk(scope, func(c *sitter.Node) bool {
		if c.StartByte() >= n.StartByte() {
			return false
		}
		if c.Type() == "object_creation_expression" && lastChildOfType(c, "class_body") != nil &&
			f.text(c.ChildByFieldName("type")) == typ {
			count++
		}
		return true
	})
	return count
}

// MethodOf resolves the method the annotation is attached to. Constructors,
// fields, types and parameters are not methods.
func (s *Site) MethodOf() (handler.Method, bool) {
	if s.method != nil {
		return s.method, true
	}
	parent := s.node.Parent()
	if parent == nil || parent.Type() != "modifiers" {
		return nil, false
	}
	decl := parent.Parent()
	if decl == nil || decl.Type() != "method_declaration" {
		return nil, false
	}
	s.method = &Method{file: s.file, node: decl}
	s.file.methods = append(s.file.methods, s.method)
	return s.method, true
}

func nodeSpan(n *sitter.Node) Span {
	return Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func lastChildOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := int(n.NamedChildCount()) - 1; i >= 0; i-- {
		if c := n.NamedChild(i); c.Type() == typ {
			return c
		}
	}
	return nil
}
