package ast

import (
	"slices"
	"strings"
)

type Kind int

const (
	KindInvalid Kind = iota

	// Expressions
	KindName
	KindLiteral
	KindCall
	KindNew
	KindCast
	KindInstanceOf

	// Statements
	KindBlock
	KindLocalDef
	KindIf
	KindTry
	KindCatch
	KindThrow
	KindReturn
	KindVerbatim
	KindComment

	// Declarations
	KindType
	KindClass
	KindMethod
	KindArgument
	KindAnnotation
)

var kindNames = map[Kind]string{
	KindInvalid:    "Invalid",
	KindName:       "Name",
	KindLiteral:    "Literal",
	KindCall:       "Call",
	KindNew:        "New",
	KindCast:       "Cast",
	KindInstanceOf: "InstanceOf",
	KindBlock:      "Block",
	KindLocalDef:   "LocalDef",
	KindIf:         "If",
	KindTry:        "Try",
	KindCatch:      "Catch",
	KindThrow:      "Throw",
	KindReturn:     "Return",
	KindVerbatim:   "Verbatim",
	KindComment:    "Comment",
	KindType:       "Type",
	KindClass:      "Class",
	KindMethod:     "Method",
	KindArgument:   "Argument",
	KindAnnotation: "Annotation",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsStatement reports whether fragments of this kind can stand in a block.
func (k Kind) IsStatement() bool {
	switch k {
	case KindBlock, KindLocalDef, KindIf, KindTry, KindThrow, KindReturn,
		KindVerbatim, KindComment, KindCall, KindNew, KindClass:
		return true
	}
	return false
}

// IsExpression reports whether fragments of this kind produce a value.
func (k Kind) IsExpression() bool {
	switch k {
	case KindName, KindLiteral, KindCall, KindNew, KindCast, KindInstanceOf:
		return true
	}
	return false
}

// Node is an immutable code fragment. Nodes are only produced by a successful
// Build; every accessor returns a copy of the underlying slices.
type Node struct {
	kind      Kind
	text      string
	final     bool
	anonymous bool
	local     bool
	modifiers []string

	typ      *Node
	operand  *Node
	cond     *Node
	then     *Node
	els      *Node
	init     *Node
	body     *Node
	finally  *Node
	typeArgs []*Node
	args     []*Node
	stmts    []*Node
	catches  []*Node
	methods  []*Node
	annots   []*Node
	thrown   []*Node
}

// Build makes an already built node usable wherever a Builder is expected.
func (n *Node) Build() (*Node, error) {
	if n == nil {
		return nil, constructionError("nil fragment")
	}
	return n, nil
}

func (n *Node) Kind() Kind { return n.kind }

// Text is the identifier, method name, type name, literal or source text the
// node carries, depending on its kind.
func (n *Node) Text() string { return n.text }

func (n *Node) IsFinal() bool { return n.final }
func (n *Node) IsAnonymous() bool { return n.anonymous }
func (n *Node) IsLocal() bool { return n.local }
func (n *Node) Modifiers() []string { return slices.Clone(n.modifiers) }

// Type is the declared type of a local, argument, method or cast, the
// instantiated type of a New, the checked type of an InstanceOf and the
// supertype of an anonymous class.
func (n *Node) Type() *Node { return n.typ }

// Operand is the receiver of a call, the value of a cast or instanceof, and
// the thrown or returned value.
func (n *Node) Operand() *Node { return n.operand }

func (n *Node) Cond() *Node { return n.cond }
func (n *Node) Then() *Node { return n.then }
func (n *Node) Else() *Node { return n.els }

// Init is the initializer of a local definition.
func (n *Node) Init() *Node { return n.init }

// Body is the protected block of a try, the handler block of a catch, the
// method body of a method, or the anonymous class of a New.
func (n *Node) Body() *Node { return n.body }

func (n *Node) Finally() *Node { return n.finally }
func (n *Node) TypeArguments() []*Node { return slices.Clone(n.typeArgs) }
func (n *Node) Arguments() []*Node { return slices.Clone(n.args) }
func (n *Node) Statements() []*Node { return slices.Clone(n.stmts) }
func (n *Node) Catches() []*Node { return slices.Clone(n.catches) }
func (n *Node) Methods() []*Node { return slices.Clone(n.methods) }
func (n *Node) Annotations() []*Node { return slices.Clone(n.annots) }
func (n *Node) ThrownExceptions() []*Node { return slices.Clone(n.thrown) }
func (n *Node) HasElse() bool { return n.els != nil }
func (n *Node) HasInit() bool { return n.init != nil }
func (n *Node) HasFinally() bool { return n.finally != nil }
func (n *Node) IsOfKind(kinds ...Kind) bool { return slices.Contains(kinds, n.kind) }

// Children lists every direct sub-fragment in rendering order.
func (n *Node) Children() []*Node {
	var out []*Node
	add := func(c ...*Node) {
		for _, child := range c {
			if child != nil {
				out = append(out, child)
			}
		}
	}
	add(n.annots...)
	add(n.typ)
	add(n.typeArgs...)
	add(n.operand, n.cond, n.then, n.els, n.init)
	add(n.args...)
	add(n.thrown...)
	add(n.body)
	add(n.stmts...)
	add(n.methods...)
	add(n.catches...)
	add(n.finally)
	return out
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children() {
		child.Walk(fn)
	}
}

// FindAll returns every descendant of n (including n) of the given kind.
func (n *Node) FindAll(kind Kind) []*Node {
	var result []*Node
	n.Walk(func(c *Node) bool {
		if c.kind == kind {
			result = append(result, c)
		}
		return true
	})
	return result
}

func (n *Node) String() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, indent int) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.kind.String())
	if n.text != "" {
		sb.WriteString(" ")
		sb.WriteString(strings.ReplaceAll(n.text, "\n", `\n`))
	}
	if n.final {
		sb.WriteString(" final")
	}
	if n.anonymous {
		sb.WriteString(" anonymous")
	}
	sb.WriteString("\n")
	for _, child := range n.Children() {
		child.dump(sb, indent+1)
	}
}
