package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, b Builder, opts ...PrintOption) string {
	t.Helper()
	node, err := b.Build()
	require.NoError(t, err)
	return Render(node, opts...)
}

func TestPrintExpressions(t *testing.T) {
	tests := []struct {
		name     string
		builder  Builder
		expected string
	}{
		{
			name:     "unqualified call",
			builder:  Call(nil, "doWork"),
			expected: "doWork()",
		},
		{
			name:     "qualified call with arguments",
			builder:  Call(Name("java.awt.EventQueue"), "invokeLater").WithArgument(Name("$r")),
			expected: "java.awt.EventQueue.invokeLater($r)",
		},
		{
			name:     "chained call",
			builder:  Call(Call(Name("a"), "b"), "c").WithArguments(Literal("1"), Null()),
			expected: "a.b().c(1, null)",
		},
		{
			name:     "cast receiver is parenthesized",
			builder:  Call(Cast(Type("Foo"), Name("x")), "bar"),
			expected: "((Foo) x).bar()",
		},
		{
			name:     "new with argument",
			builder:  New(Type("java.lang.RuntimeException")).WithArgument(Name("$cause")),
			expected: "new java.lang.RuntimeException($cause)",
		},
		{
			name:     "generic type",
			builder:  New(Type("java.util.HashMap").WithTypeArgument(Type("String")).WithTypeArgument(Type("Integer"))),
			expected: "new java.util.HashMap<String, Integer>()",
		},
		{
			name:     "cast",
			builder:  Cast(Type("java.io.IOException"), Name("$cause")),
			expected: "(java.io.IOException) $cause",
		},
		{
			name:     "instanceof",
			builder:  InstanceOf(Name("$cause"), Type("java.io.IOException")),
			expected: "$cause instanceof java.io.IOException",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, tt.builder))
		})
	}
}

func TestPrintStatements(t *testing.T) {
	tests := []struct {
		name     string
		builder  Builder
		expected string
	}{
		{
			name:     "final local",
			builder:  LocalDef(Type("java.lang.Throwable"), "$cause").MakeFinal().WithInitialization(Call(Name("$ex2"), "getCause")),
			expected: "final java.lang.Throwable $cause = $ex2.getCause();\n",
		},
		{
			name:     "local without initializer",
			builder:  LocalDef(Type("int"), "count"),
			expected: "int count;\n",
		},
		{
			name:     "throw",
			builder:  Throw(Cast(Type("E"), Name("$cause"))),
			expected: "throw (E) $cause;\n",
		},
		{
			name:     "bare return",
			builder:  Return(nil),
			expected: "return;\n",
		},
		{
			name:     "return value",
			builder:  Return(Null()),
			expected: "return null;\n",
		},
		{
			name:     "if with single statement",
			builder:  If(InstanceOf(Name("c"), Type("E"))).Then(Throw(Cast(Type("E"), Name("c")))),
			expected: "if (c instanceof E) throw (E) c;\n",
		},
		{
			name:     "if single statement with else",
			builder:  If(Name("ok")).Then(Return(nil)).Else(Throw(Name("err"))),
			expected: "if (ok) return;\nelse throw err;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, tt.builder))
		})
	}
}

func TestPrintBlocks(t *testing.T) {
	tests := []struct {
		name     string
		builder  Builder
		expected string
	}{
		{
			name:     "empty block",
			builder:  Block(),
			expected: "{\n}",
		},
		{
			name:    "if else blocks",
			builder: Block().WithStatement(If(Call(Name("q"), "ok")).Then(Block().WithStatement(Call(nil, "a"))).Else(Block().WithStatement(Call(nil, "b")))),
			expected: "{\n" +
				"    if (q.ok()) {\n" +
				"        a();\n" +
				"    } else {\n" +
				"        b();\n" +
				"    }\n" +
				"}",
		},
		{
			name: "else if chain",
			builder: Block().WithStatement(
				If(Name("a")).Then(Block()).Else(If(Name("b")).Then(Block()))),
			expected: "{\n" +
				"    if (a) {\n" +
				"    } else if (b) {\n" +
				"    }\n" +
				"}",
		},
		{
			name: "try catch finally",
			builder: Block().WithStatement(
				Try(Block().WithStatement(Call(nil, "run"))).
					Catch(Arg(Type("InterruptedException"), "$ex1"), Block()).
					Finally(Block().WithStatement(Call(nil, "done")))),
			expected: "{\n" +
				"    try {\n" +
				"        run();\n" +
				"    } catch (InterruptedException $ex1) {\n" +
				"    } finally {\n" +
				"        done();\n" +
				"    }\n" +
				"}",
		},
		{
			name: "verbatim is reindented",
			builder: Block().WithStatement(Block().WithStatements(
				Comment("// keep"),
				Verbatim("if (x) {\n    y();\n\n}"))),
			expected: "{\n" +
				"    {\n" +
				"        // keep\n" +
				"        if (x) {\n" +
				"            y();\n" +
				"\n" +
				"        }\n" +
				"    }\n" +
				"}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, render(t, tt.builder))
		})
	}
}

func TestPrintAnonymousClassWithBaseIndent(t *testing.T) {
	b := Block().WithStatement(
		LocalDef(Type("java.lang.Runnable"), "$r").MakeFinal().WithInitialization(
			New(Type("java.lang.Runnable")).WithBody(ClassDef("").MakeAnonymous().
				WithMethod(MethodDef(Type("void"), "run").
					MakePublic().
					WithAnnotation(Annotation(Type("java.lang.Override"))).
					WithStatement(Verbatim("doWork();"))))))

	got := render(t, b, WithBaseIndent("\t"), WithIndent("\t"))
	expected := "{\n" +
		"\t\tfinal java.lang.Runnable $r = new java.lang.Runnable() {\n" +
		"\t\t\t@java.lang.Override\n" +
		"\t\t\tpublic void run() {\n" +
		"\t\t\t\tdoWork();\n" +
		"\t\t\t}\n" +
		"\t\t};\n" +
		"\t}"
	assert.Equal(t, expected, got)
}

func TestPrintMethodSignature(t *testing.T) {
	b := MethodDef(Type("java.lang.Integer"), "run").
		MakePublic().
		WithArgument(Arg(Type("int"), "x").MakeFinal()).
		WithThrownException(Type("java.lang.Exception")).
		WithStatement(Return(Name("x")))

	expected := "public java.lang.Integer run(final int x) throws java.lang.Exception {\n" +
		"    return x;\n" +
		"}"
	assert.Equal(t, expected, render(t, b))
}

func TestPrintLocalClass(t *testing.T) {
	b := Block().WithStatement(ClassDef("Helper").MakeLocal().
		WithMethod(MethodDef(Type("void"), "a")).
		WithMethod(MethodDef(Type("void"), "b")))

	expected := "{\n" +
		"    class Helper {\n" +
		"        void a() {\n" +
		"        }\n" +
		"\n" +
		"        void b() {\n" +
		"        }\n" +
		"    }\n" +
		"}"
	assert.Equal(t, expected, render(t, b))
}
