package ast

import "strings"

type NameBuilder struct {
	name string
}

// Name references a variable, field or (qualified) type by name.
func Name(name string) NameBuilder {
	return NameBuilder{name: name}
}

func (b NameBuilder) Build() (*Node, error) {
	if strings.TrimSpace(b.name) == "" {
		return nil, constructionError("empty name")
	}
	return &Node{kind: KindName, text: b.name}, nil
}

type LiteralBuilder struct {
	text string
}

// Literal is a literal expression written exactly as given.
func Literal(text string) LiteralBuilder {
	return LiteralBuilder{text: text}
}

// Null is the null literal.
func Null() LiteralBuilder {
	return Literal("null")
}

func (b LiteralBuilder) Build() (*Node, error) {
	if b.text == "" {
		return nil, constructionError("empty literal")
	}
	return &Node{kind: KindLiteral, text: b.text}, nil
}

type TypeBuilder struct {
	name string
	args []Builder
}

// Type references a type by its written name, e.g. "java.lang.Runnable".
func Type(name string) TypeBuilder {
	return TypeBuilder{name: name}
}

func (b TypeBuilder) WithTypeArgument(arg Builder) TypeBuilder {
	b.args = with(b.args, arg)
	return b
}

func (b TypeBuilder) Build() (*Node, error) {
	if strings.TrimSpace(b.name) == "" {
		return nil, constructionError("empty type name")
	}
	args, err := buildAll(b.args, "type argument", KindType)
	if err != nil {
		return nil, err
	}
	return &Node{kind: KindType, text: b.name, typeArgs: args}, nil
}

type CallBuilder struct {
	receiver Builder
	name     string
	args     []Builder
}

// Call invokes method on receiver. A nil receiver produces an unqualified
// call.
func Call(receiver Builder, method string) CallBuilder {
	return CallBuilder{receiver: receiver, name: method}
}

func (b CallBuilder) WithArgument(arg Builder) CallBuilder {
	b.args = with(b.args, arg)
	return b
}

func (b CallBuilder) WithArguments(args ...Builder) CallBuilder {
	b.args = with(b.args, args...)
	return b
}

func (b CallBuilder) Build() (*Node, error) {
	if b.name == "" {
		if b.receiver == nil {
			return nil, constructionError("call without receiver and method name")
		}
		return nil, constructionError("call without method name")
	}
	receiver, err := buildOptional(b.receiver, "call receiver")
	if err != nil {
		return nil, err
	}
	if receiver != nil && !receiver.kind.IsExpression() {
		return nil, constructionError("call receiver cannot be a %s", receiver.kind)
	}
	args, err := buildExprs(b.args, "call argument")
	if err != nil {
		return nil, err
	}
	return &Node{kind: KindCall, text: b.name, operand: receiver, args: args}, nil
}

type NewBuilder struct {
	typ  Builder
	args []Builder
	body *ClassBuilder
}

// New instantiates typ. With WithBody it instantiates an anonymous class
// whose supertype is typ.
func New(typ Builder) NewBuilder {
	return NewBuilder{typ: typ}
}

func (b NewBuilder) WithArgument(arg Builder) NewBuilder {
	b.args = with(b.args, arg)
	return b
}

func (b NewBuilder) WithBody(body ClassBuilder) NewBuilder {
	b.body = &body
	return b
}

func (b NewBuilder) Build() (*Node, error) {
	typ, err := buildOne(b.typ, "instantiated type", KindType)
	if err != nil {
		return nil, err
	}
	args, err := buildExprs(b.args, "constructor argument")
	if err != nil {
		return nil, err
	}
	n := &Node{kind: KindNew, typ: typ, args: args}
	if b.body != nil {
		if !b.body.anonymous {
			return nil, constructionError("body of new %s must be an anonymous class", typ.text)
		}
		cls, err := b.body.Build()
		if err != nil {
			return nil, err
		}
		anon := *cls
		anon.typ = typ
		n.body = &anon
	}
	return n, nil
}

type CastBuilder struct {
	typ  Builder
	expr Builder
}

func Cast(typ Builder, expr Builder) CastBuilder {
	return CastBuilder{typ: typ, expr: expr}
}

func (b CastBuilder) Build() (*Node, error) {
	typ, err := buildOne(b.typ, "cast type", KindType)
	if err != nil {
		return nil, err
	}
	expr, err := buildExpr(b.expr, "cast operand")
	if err != nil {
		return nil, err
	}
	return &Node{kind: KindCast, typ: typ, operand: expr}, nil
}

type InstanceOfBuilder struct {
	expr Builder
	typ  Builder
}

func InstanceOf(expr Builder, typ Builder) InstanceOfBuilder {
	return InstanceOfBuilder{expr: expr, typ: typ}
}

func (b InstanceOfBuilder) Build() (*Node, error) {
	expr, err := buildExpr(b.expr, "instanceof operand")
	if err != nil {
		return nil, err
	}
	typ, err := buildOne(b.typ, "instanceof type", KindType)
	if err != nil {
		return nil, err
	}
	return &Node{kind: KindInstanceOf, typ: typ, operand: expr}, nil
}
