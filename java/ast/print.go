package ast

import (
	"io"
	"strings"
)

type Printer struct {
	w           io.Writer
	err         error
	base        string
	indent      int
	indentStr   string
	atLineStart bool
}

type PrintOption func(*Printer)

// WithIndent sets the string written per nesting level (default four spaces).
func WithIndent(unit string) PrintOption {
	return func(p *Printer) {
		p.indentStr = unit
	}
}

// WithBaseIndent prefixes every line but the first, so that a rendered block
// can replace a body that starts in the middle of an indented line.
func WithBaseIndent(prefix string) PrintOption {
	return func(p *Printer) {
		p.base = prefix
	}
}

func NewPrinter(w io.Writer, opts ...PrintOption) *Printer {
	p := &Printer{
		w:         w,
		indentStr: "    ",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Print renders node as Java source. Blocks and expressions are written
// inline, without a trailing newline; other statements end with one.
func (p *Printer) Print(node *Node) error {
	switch {
	case node.kind == KindBlock:
		p.printBlockInline(node)
	case node.kind.IsStatement() && !node.kind.IsExpression():
		p.printStatement(node)
	case node.kind == KindMethod:
		p.printMethod(node)
	case node.kind == KindArgument:
		p.printArgument(node)
	case node.kind == KindAnnotation:
		p.write("@")
		p.printType(node.typ)
	default:
		p.printExpr(node)
	}
	return p.err
}

// Render returns the source text of node.
func Render(node *Node, opts ...PrintOption) string {
	var sb strings.Builder
	NewPrinter(&sb, opts...).Print(node)
	return sb.String()
}

func (p *Printer) write(s string) {
	if p.err != nil || s == "" {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *Printer) writeIndent() {
	if !p.atLineStart {
		return
	}
	p.atLineStart = false
	p.write(p.base)
	for i := 0; i < p.indent; i++ {
		p.write(p.indentStr)
	}
}

func (p *Printer) newline() {
	p.write("\n")
	p.atLineStart = true
}

func (p *Printer) printBlockInline(node *Node) {
	p.write("{")
	p.newline()
	p.indent++
	for _, stmt := range node.stmts {
		p.printStatement(stmt)
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *Printer) printStatement(node *Node) {
	p.writeIndent()
	p.printStatementBody(node)
	p.newline()
}

// printStatementBody writes a statement without its leading indentation and
// trailing newline, for use after "if (...) " and "else ".
func (p *Printer) printStatementBody(node *Node) {
	switch node.kind {
	case KindBlock:
		p.printBlockInline(node)
	case KindLocalDef:
		p.printLocalDef(node)
	case KindIf:
		p.printIf(node)
	case KindTry:
		p.printTry(node)
	case KindThrow:
		p.write("throw ")
		p.printExpr(node.operand)
		p.write(";")
	case KindReturn:
		p.write("return")
		if node.operand != nil {
			p.write(" ")
			p.printExpr(node.operand)
		}
		p.write(";")
	case KindVerbatim, KindComment:
		p.printVerbatim(node.text)
	case KindClass:
		p.printClassDecl(node)
	default:
		p.printExpr(node)
		p.write(";")
	}
}

func (p *Printer) printLocalDef(node *Node) {
	if node.final {
		p.write("final ")
	}
	p.printType(node.typ)
	p.write(" ")
	p.write(node.text)
	if node.init != nil {
		p.write(" = ")
		p.printExpr(node.init)
	}
	p.write(";")
}

func (p *Printer) printIf(node *Node) {
	p.write("if (")
	p.printExpr(node.cond)
	p.write(") ")
	p.printStatementBody(node.then)
	if node.els == nil {
		return
	}
	if node.then.kind == KindBlock {
		p.write(" ")
	} else {
		p.newline()
		p.writeIndent()
	}
	p.write("else ")
	p.printStatementBody(node.els)
}

func (p *Printer) printTry(node *Node) {
	p.write("try ")
	p.printBlockInline(node.body)
	for _, c := range node.catches {
		p.write(" catch (")
		p.printArgument(c.operand)
		p.write(") ")
		p.printBlockInline(c.body)
	}
	if node.finally != nil {
		p.write(" finally ")
		p.printBlockInline(node.finally)
	}
}

// printVerbatim writes carried-over source one line at a time so that every
// line picks up the current indentation.
func (p *Printer) printVerbatim(text string) {
	lines := strings.Split(strings.TrimRight(text, " \t\r\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			p.newline()
		}
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		p.writeIndent()
		p.write(line)
	}
}

func (p *Printer) printArgument(node *Node) {
	if node.final {
		p.write("final ")
	}
	p.printType(node.typ)
	p.write(" ")
	p.write(node.text)
}

func (p *Printer) printType(node *Node) {
	p.write(node.text)
	if len(node.typeArgs) == 0 {
		return
	}
	p.write("<")
	for i, arg := range node.typeArgs {
		if i > 0 {
			p.write(", ")
		}
		p.printType(arg)
	}
	p.write(">")
}

func (p *Printer) printExpr(node *Node) {
	switch node.kind {
	case KindName, KindLiteral:
		p.write(node.text)
	case KindType:
		p.printType(node)
	case KindCall:
		if node.operand != nil {
			p.printOperand(node.operand, KindCast, KindInstanceOf)
			p.write(".")
		}
		p.write(node.text)
		p.printArguments(node.args)
	case KindNew:
		p.write("new ")
		p.printType(node.typ)
		p.printArguments(node.args)
		if node.body != nil {
			p.write(" ")
			p.printClassBody(node.body)
		}
	case KindCast:
		p.write("(")
		p.printType(node.typ)
		p.write(") ")
		p.printOperand(node.operand, KindInstanceOf)
	case KindInstanceOf:
		p.printExpr(node.operand)
		p.write(" instanceof ")
		p.printType(node.typ)
	default:
		p.printStatementBody(node)
	}
}

// printOperand parenthesizes operands whose kind binds looser than the
// surrounding expression.
func (p *Printer) printOperand(node *Node, loose ...Kind) {
	if node.IsOfKind(loose...) {
		p.write("(")
		p.printExpr(node)
		p.write(")")
		return
	}
	p.printExpr(node)
}

func (p *Printer) printArguments(args []*Node) {
	p.write("(")
	for i, arg := range args {
		if i > 0 {
			p.write(", ")
		}
		p.printExpr(arg)
	}
	p.write(")")
}

func (p *Printer) printClassDecl(node *Node) {
	p.write("class ")
	p.write(node.text)
	p.write(" ")
	p.printClassBody(node)
}

func (p *Printer) printClassBody(node *Node) {
	p.write("{")
	p.newline()
	p.indent++
	for i, m := range node.methods {
		if i > 0 {
			p.newline()
		}
		p.printMethod(m)
		p.newline()
	}
	p.indent--
	p.writeIndent()
	p.write("}")
}

func (p *Printer) printMethod(node *Node) {
	for _, a := range node.annots {
		p.writeIndent()
		p.write("@")
		p.printType(a.typ)
		p.newline()
	}
	p.writeIndent()
	for _, m := range node.modifiers {
		p.write(m)
		p.write(" ")
	}
	p.printType(node.typ)
	p.write(" ")
	p.write(node.text)
	p.write("(")
	for i, arg := range node.args {
		if i > 0 {
			p.write(", ")
		}
		p.printArgument(arg)
	}
	p.write(")")
	if len(node.thrown) > 0 {
		p.write(" throws ")
		for i, t := range node.thrown {
			if i > 0 {
				p.write(", ")
			}
			p.printType(t)
		}
	}
	p.write(" ")
	p.printBlockInline(node.body)
}
