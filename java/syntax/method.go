package syntax

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dhamidi/weave/java/ast"
)

// Method is the handler.Method facade over a method_declaration node.
//
// Rewrites made by the self-reference passes are kept on the Method and
// show up in Statements; they reach the file only as part of the body
// installed by Rebuild.
type Method struct {
	file *File
	node *sitter.Node

	edits []edit

	body    *ast.Node
	text    string
	rebuilt bool
}

func (m *Method) Name() string {
	return m.file.text(m.node.ChildByFieldName("name"))
}

// EnclosingType returns the simple name of the innermost named type
// declaring the method, or "" when that type is anonymous.
func (m *Method) EnclosingType() string {
	for n := m.node.Parent(); n != nil; n = n.Parent() {
		switch n.Type() {
		case "class_body":
			if p := n.Parent(); p != nil && (p.Type() == "object_creation_expression" || p.Type() == "enum_constant") {
				return ""
			}
		case "class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration":
			return m.file.text(n.ChildByFieldName("name"))
		}
	}
	return ""
}

func (m *Method) WasCompletelyParsed() bool {
	return !m.node.HasError()
}

// IsAbstract reports a method without a body: abstract, native or declared
// in an interface without a default.
func (m *Method) IsAbstract() bool {
	if m.bodyNode() == nil {
		return true
	}
	return m.hasModifier("abstract") || m.hasModifier("native")
}

// IsEmpty reports a body holding no statements. Comments do not count.
func (m *Method) IsEmpty() bool {
	body := m.bodyNode()
	if body == nil {
		return true
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		if !isComment(body.NamedChild(i)) {
			return false
		}
	}
	return true
}

func (m *Method) ReturnType() *ast.Node {
	return m.typeNode(m.node.ChildByFieldName("type"))
}

func (m *Method) ThrownExceptions() []*ast.Node {
	var thrown []*ast.Node
	for i := 0; i < int(m.node.NamedChildCount()); i++ {
		clause := m.node.NamedChild(i)
		if clause.Type() != "throws" {
			continue
		}
		for j := 0; j < int(clause.NamedChildCount()); j++ {
			if typ := clause.NamedChild(j); !isComment(typ) {
				thrown = append(thrown, m.typeNode(typ))
			}
		}
	}
	return thrown
}

func (m *Method) typeNode(n *sitter.Node) *ast.Node {
	text := "void"
	if n != nil {
		text = m.file.text(n)
	}
	typ, err := ast.Type(text).Build()
	if err != nil {
		return nil
	}
	return typ
}

// Statements returns the body as verbatim fragments, one per source line
// group: a statement shares its fragment with anything else starting on the
// line it ends on, such as a trailing comment. Text is dedented to the
// statement's own indentation.
func (m *Method) Statements() ([]*ast.Node, error) {
	body := m.bodyNode()
	if body == nil {
		return nil, nil
	}
	var groups [][]*sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if n := len(groups); n > 0 {
			last := groups[n-1][len(groups[n-1])-1]
			if child.StartPoint().Row == last.EndPoint().Row {
				groups[n-1] = append(groups[n-1], child)
				continue
			}
		}
		groups = append(groups, []*sitter.Node{child})
	}

	stmts := make([]*ast.Node, 0, len(groups))
	for _, group := range groups {
		first, last := group[0], group[len(group)-1]
		start, end := int(first.StartByte()), int(last.EndByte())
		src, err := applyEdits(m.file.src[start:end], start, m.edits)
		if err != nil {
			return nil, fmt.Errorf("statements of %s: %w", m.Name(), err)
		}
		text := dedent(string(src), m.file.lineIndent(start))

		var b ast.Builder = ast.Verbatim(text)
		if allComments(group) {
			b = ast.Comment(text)
		}
		stmt, err := b.Build()
		if err != nil {
			return nil, fmt.Errorf("statements of %s: line %d: %w", m.Name(), first.StartPoint().Row+1, err)
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

// CompletesNormally reports whether control can reach the end of the body.
func (m *Method) CompletesNormally() bool {
	body := m.bodyNode()
	return body == nil || m.file.completesNormally(body)
}

// ReplaceBody renders block at the method's indentation. It can be called
// once per Method.
func (m *Method) ReplaceBody(block *ast.Node) error {
	if m.body != nil {
		return fmt.Errorf("replace %s: %w", m.Name(), ErrAlreadyReplaced)
	}
	body := m.bodyNode()
	if body == nil {
		return fmt.Errorf("replace %s: method has no body", m.Name())
	}
	m.text = ast.Render(block,
		ast.WithBaseIndent(m.file.lineIndent(int(body.StartByte()))),
		ast.WithIndent(m.indentUnit()))
	m.body = block
	return nil
}

// Rebuild schedules the rendered body for the next Commit.
func (m *Method) Rebuild() error {
	switch {
	case m.body == nil:
		return fmt.Errorf("rebuild %s: %w", m.Name(), ErrNotReplaced)
	case m.rebuilt:
		return fmt.Errorf("rebuild %s: %w", m.Name(), ErrAlreadyRebuilt)
	}
	m.file.addEdit(nodeSpan(m.bodyNode()), m.text)
	m.rebuilt = true
	return nil
}

// Span is the byte range of the whole declaration.
func (m *Method) Span() Span {
	return nodeSpan(m.node)
}

func (m *Method) bodyNode() *sitter.Node {
	return m.node.ChildByFieldName("body")
}

func (m *Method) hasModifier(keyword string) bool {
	for i := 0; i < int(m.node.NamedChildCount()); i++ {
		mods := m.node.NamedChild(i)
		if mods.Type() != "modifiers" {
			continue
		}
		for j := 0; j < int(mods.ChildCount()); j++ {
			if mods.Child(j).Type() == keyword {
				return true
			}
		}
	}
	return false
}

// indentUnit is the configured unit, or the step between the line opening
// the body and its first statement.
func (m *Method) indentUnit() string {
	if m.file.indentUnit != "" {
		return m.file.indentUnit
	}
	body := m.bodyNode()
	base := m.file.lineIndent(int(body.StartByte()))
	if body.NamedChildCount() > 0 {
		first := body.NamedChild(0)
		if first.StartPoint().Row != body.StartPoint().Row {
			indent := m.file.lineIndent(int(first.StartByte()))
			if len(indent) > len(base) && strings.HasPrefix(indent, base) {
				return indent[len(base):]
			}
		}
	}
	if strings.Contains(base, "\t") {
		return "\t"
	}
	return defaultIndentUnit
}

func (m *Method) addEdit(n *sitter.Node, text string) {
	m.edits = append(m.edits, edit{span: nodeSpan(n), text: text})
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "line_comment", "block_comment", "comment":
		return true
	}
	return false
}

func allComments(nodes []*sitter.Node) bool {
	for _, n := range nodes {
		if !isComment(n) {
			return false
		}
	}
	return true
}
