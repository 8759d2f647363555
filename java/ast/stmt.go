package ast

import "strings"

type BlockBuilder struct {
	stmts []Builder
}

// Block collects statements in the order they are added.
func Block() BlockBuilder {
	return BlockBuilder{}
}

func (b BlockBuilder) WithStatement(stmt Builder) BlockBuilder {
	b.stmts = with(b.stmts, stmt)
	return b
}

func (b BlockBuilder) WithStatements(stmts ...Builder) BlockBuilder {
	b.stmts = with(b.stmts, stmts...)
	return b
}

func (b BlockBuilder) Build() (*Node, error) {
	stmts, err := buildStatements(b.stmts, "block statement")
	if err != nil {
		return nil, err
	}
	return &Node{kind: KindBlock, stmts: stmts}, nil
}

type LocalDefBuilder struct {
	typ   Builder
	name  string
	final bool
	init  Builder
}

// LocalDef declares a local variable.
func LocalDef(typ Builder, name string) LocalDefBuilder {
	return LocalDefBuilder{typ: typ, name: name}
}

func (b LocalDefBuilder) MakeFinal() LocalDefBuilder {
	b.final = true
	return b
}

func (b LocalDefBuilder) WithInitialization(init Builder) LocalDefBuilder {
	b.init = init
	return b
}

func (b LocalDefBuilder) Build() (*Node, error) {
	if b.name == "" {
		return nil, constructionError("local variable without name")
	}
	typ, err := buildOne(b.typ, "local variable type", KindType)
	if err != nil {
		return nil, err
	}
	var init *Node
	if b.init != nil {
		if init, err = buildExpr(b.init, "local variable initializer"); err != nil {
			return nil, err
		}
	}
	return &Node{kind: KindLocalDef, text: b.name, final: b.final, typ: typ, init: init}, nil
}

type IfBuilder struct {
	cond Builder
	then Builder
	els  Builder
}

// If starts a conditional. Exactly one Then is required; Else is optional and
// an absent else branch is distinct from an empty else block.
func If(cond Builder) IfBuilder {
	return IfBuilder{cond: cond}
}

func (b IfBuilder) Then(stmt Builder) IfBuilder {
	b.then = stmt
	return b
}

func (b IfBuilder) Else(stmt Builder) IfBuilder {
	b.els = stmt
	return b
}

func (b IfBuilder) Build() (*Node, error) {
	cond, err := buildExpr(b.cond, "if condition")
	if err != nil {
		return nil, err
	}
	then, err := buildStatement(b.then, "then branch")
	if err != nil {
		return nil, err
	}
	var els *Node
	if b.els != nil {
		if els, err = buildStatement(b.els, "else branch"); err != nil {
			return nil, err
		}
	}
	return &Node{kind: KindIf, cond: cond, then: then, els: els}, nil
}

type ArgBuilder struct {
	typ   Builder
	name  string
	final bool
}

// Arg declares a method parameter or a catch clause binding.
func Arg(typ Builder, name string) ArgBuilder {
	return ArgBuilder{typ: typ, name: name}
}

func (b ArgBuilder) MakeFinal() ArgBuilder {
	b.final = true
	return b
}

func (b ArgBuilder) Build() (*Node, error) {
	if b.name == "" {
		return nil, constructionError("argument without name")
	}
	typ, err := buildOne(b.typ, "argument type", KindType)
	if err != nil {
		return nil, err
	}
	return &Node{kind: KindArgument, text: b.name, final: b.final, typ: typ}, nil
}

type catchClause struct {
	arg   ArgBuilder
	block BlockBuilder
}

type TryBuilder struct {
	block   BlockBuilder
	catches []catchClause
	finally *BlockBuilder
}

// Try protects block. Catch clauses keep the order they are added in.
func Try(block BlockBuilder) TryBuilder {
	return TryBuilder{block: block}
}

func (b TryBuilder) Catch(arg ArgBuilder, block BlockBuilder) TryBuilder {
	b.catches = with(b.catches, catchClause{arg: arg, block: block})
	return b
}

func (b TryBuilder) Finally(block BlockBuilder) TryBuilder {
	b.finally = &block
	return b
}

func (b TryBuilder) Build() (*Node, error) {
	if len(b.catches) == 0 && b.finally == nil {
		return nil, constructionError("try without catch or finally")
	}
	block, err := b.block.Build()
	if err != nil {
		return nil, err
	}
	n := &Node{kind: KindTry, body: block}
	for _, c := range b.catches {
		arg, err := c.arg.Build()
		if err != nil {
			return nil, err
		}
		handler, err := c.block.Build()
		if err != nil {
			return nil, err
		}
		n.catches = append(n.catches, &Node{kind: KindCatch, operand: arg, body: handler})
	}
	if b.finally != nil {
		if n.finally, err = b.finally.Build(); err != nil {
			return nil, err
		}
	}
	return n, nil
}

type ThrowBuilder struct {
	expr Builder
}

func Throw(expr Builder) ThrowBuilder {
	return ThrowBuilder{expr: expr}
}

func (b ThrowBuilder) Build() (*Node, error) {
	expr, err := buildExpr(b.expr, "thrown value")
	if err != nil {
		return nil, err
	}
	return &Node{kind: KindThrow, operand: expr}, nil
}

type ReturnBuilder struct {
	expr Builder
}

// Return returns expr; a nil expr returns from a void method.
func Return(expr Builder) ReturnBuilder {
	return ReturnBuilder{expr: expr}
}

func (b ReturnBuilder) Build() (*Node, error) {
	if b.expr == nil {
		return &Node{kind: KindReturn}, nil
	}
	expr, err := buildExpr(b.expr, "returned value")
	if err != nil {
		return nil, err
	}
	return &Node{kind: KindReturn, operand: expr}, nil
}

type VerbatimBuilder struct {
	kind Kind
	text string
}

// Verbatim is a statement carried over from existing source text. The text
// must be a complete statement; subsequent lines are re-indented relative to
// the first when printed.
func Verbatim(text string) VerbatimBuilder {
	return VerbatimBuilder{kind: KindVerbatim, text: text}
}

// Comment is a line or block comment carried over from existing source.
func Comment(text string) VerbatimBuilder {
	return VerbatimBuilder{kind: KindComment, text: text}
}

func (b VerbatimBuilder) Build() (*Node, error) {
	if strings.TrimSpace(b.text) == "" {
		return nil, constructionError("empty %s", strings.ToLower(b.kind.String()))
	}
	return &Node{kind: b.kind, text: b.text}, nil
}
