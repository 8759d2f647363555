package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInvalid, "Invalid"},
		{KindCall, "Call"},
		{KindNew, "New"},
		{KindLocalDef, "LocalDef"},
		{KindTry, "Try"},
		{KindVerbatim, "Verbatim"},
		{KindAnnotation, "Annotation"},
		{Kind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestCallPreservesArgumentOrder(t *testing.T) {
	node, err := Call(Name("out"), "printf").
		WithArgument(Literal(`"%s %s"`)).
		WithArgument(Name("a")).
		WithArgument(Name("b")).
		Build()
	require.NoError(t, err)

	args := node.Arguments()
	require.Len(t, args, 3)
	assert.Equal(t, `"%s %s"`, args[0].Text())
	assert.Equal(t, "a", args[1].Text())
	assert.Equal(t, "b", args[2].Text())
	assert.Equal(t, "out", node.Operand().Text())
	assert.Equal(t, "printf", node.Text())
}

func TestBuildersDoNotAlias(t *testing.T) {
	base := Block().WithStatement(Call(nil, "first"))

	left, err := base.WithStatement(Call(nil, "left")).Build()
	require.NoError(t, err)
	right, err := base.WithStatement(Call(nil, "right")).Build()
	require.NoError(t, err)
	orig, err := base.Build()
	require.NoError(t, err)

	require.Len(t, left.Statements(), 2)
	require.Len(t, right.Statements(), 2)
	assert.Equal(t, "left", left.Statements()[1].Text())
	assert.Equal(t, "right", right.Statements()[1].Text())
	assert.Len(t, orig.Statements(), 1)
}

func TestNodeAccessorsReturnCopies(t *testing.T) {
	node, err := Block().WithStatement(Call(nil, "a")).Build()
	require.NoError(t, err)

	stmts := node.Statements()
	stmts[0] = nil
	assert.NotNil(t, node.Statements()[0])
}

func TestBlockPreservesStatementOrder(t *testing.T) {
	names := []string{"one", "two", "three", "four"}
	b := Block()
	for _, n := range names {
		b = b.WithStatement(Call(nil, n))
	}
	node, err := b.Build()
	require.NoError(t, err)

	var got []string
	for _, s := range node.Statements() {
		got = append(got, s.Text())
	}
	assert.Equal(t, names, got)
}

func TestIfElseDistinctFromEmptyElse(t *testing.T) {
	noElse, err := If(Name("ok")).Then(Block()).Build()
	require.NoError(t, err)
	assert.False(t, noElse.HasElse())
	assert.Nil(t, noElse.Else())

	emptyElse, err := If(Name("ok")).Then(Block()).Else(Block()).Build()
	require.NoError(t, err)
	require.True(t, emptyElse.HasElse())
	assert.Equal(t, KindBlock, emptyElse.Else().Kind())
	assert.Empty(t, emptyElse.Else().Statements())
}

func TestTryPreservesCatchOrder(t *testing.T) {
	node, err := Try(Block().WithStatement(Call(nil, "run"))).
		Catch(Arg(Type("java.io.IOException"), "a"), Block()).
		Catch(Arg(Type("java.lang.Exception"), "b"), Block()).
		Catch(Arg(Type("java.lang.Throwable"), "c"), Block()).
		Build()
	require.NoError(t, err)

	catches := node.Catches()
	require.Len(t, catches, 3)
	assert.Equal(t, "java.io.IOException", catches[0].Operand().Type().Text())
	assert.Equal(t, "java.lang.Exception", catches[1].Operand().Type().Text())
	assert.Equal(t, "java.lang.Throwable", catches[2].Operand().Type().Text())
	assert.False(t, node.HasFinally())
}

func TestNewAnonymousClassTakesSupertype(t *testing.T) {
	node, err := New(Type("java.lang.Runnable")).
		WithBody(ClassDef("").MakeAnonymous().
			WithMethod(MethodDef(Type("void"), "run").MakePublic())).
		Build()
	require.NoError(t, err)

	cls := node.Body()
	require.NotNil(t, cls)
	assert.True(t, cls.IsAnonymous())
	assert.Equal(t, "java.lang.Runnable", cls.Type().Text())
	require.Len(t, cls.Methods(), 1)
	assert.Equal(t, "run", cls.Methods()[0].Text())
}

func TestNodeSatisfiesBuilder(t *testing.T) {
	stmt, err := Verbatim("doWork();").Build()
	require.NoError(t, err)

	block, err := Block().WithStatements(Fragments([]*Node{stmt, stmt})...).Build()
	require.NoError(t, err)
	require.Len(t, block.Statements(), 2)
	assert.Same(t, stmt, block.Statements()[0])
}

func TestConstructionErrors(t *testing.T) {
	var nilNode *Node

	tests := []struct {
		name    string
		builder Builder
	}{
		{"call without receiver and name", Call(nil, "")},
		{"call without name", Call(Name("x"), "")},
		{"empty name", Name("")},
		{"empty type", Type(" ")},
		{"empty literal", Literal("")},
		{"if without condition", If(nil).Then(Block())},
		{"if without then", If(Name("ok"))},
		{"try without handlers", Try(Block())},
		{"cast to non-type", Cast(Name("x"), Name("y"))},
		{"instanceof non-type", InstanceOf(Name("x"), Name("y"))},
		{"anonymous class with name", ClassDef("Foo").MakeAnonymous().WithMethod(MethodDef(Type("void"), "run"))},
		{"named class without name", ClassDef("")},
		{"anonymous class without methods", ClassDef("").MakeAnonymous()},
		{"new with named body", New(Type("Runnable")).WithBody(ClassDef("Foo"))},
		{"local without name", LocalDef(Type("int"), "")},
		{"local initialized with statement", LocalDef(Type("int"), "x").WithInitialization(Block())},
		{"throw without value", Throw(nil)},
		{"method without name", MethodDef(Type("void"), "")},
		{"expression in block", Block().WithStatement(Name("x"))},
		{"member class in block", Block().WithStatement(ClassDef("Inner"))},
		{"nil fragment", nilNode},
		{"empty verbatim", Verbatim("  \n")},
		{"call argument statement", Call(nil, "f").WithArgument(Return(nil))},
		{"nested error surfaces", Block().WithStatement(If(Call(nil, "")).Then(Block()))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := tt.builder.Build()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConstruction)
			assert.Nil(t, node)
		})
	}
}

func TestLocalClassIsAStatement(t *testing.T) {
	node, err := Block().
		WithStatement(ClassDef("Helper").MakeLocal().WithMethod(MethodDef(Type("void"), "help"))).
		Build()
	require.NoError(t, err)
	require.Len(t, node.Statements(), 1)
	assert.True(t, node.Statements()[0].IsLocal())
}

func TestFindAll(t *testing.T) {
	node, err := Block().
		WithStatement(If(Name("a")).Then(Throw(Name("x")))).
		WithStatement(If(Name("b")).Then(Block().WithStatement(Throw(Name("y"))))).
		Build()
	require.NoError(t, err)

	assert.Len(t, node.FindAll(KindIf), 2)
	assert.Len(t, node.FindAll(KindThrow), 2)
	assert.Empty(t, node.FindAll(KindTry))
}
