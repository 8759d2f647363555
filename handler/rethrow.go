package handler

import "github.com/dhamidi/weave/java/ast"

// rethrowChain rebuilds a checked exception from the unwrapped cause held in
// the local named cause: one instanceof check per declared type, in
// declaration order, then an unconditional RuntimeException wrapper.
func rethrowChain(cause string, thrown []*ast.Node) []ast.Builder {
	stmts := make([]ast.Builder, 0, len(thrown)+1)
	for _, typ := range thrown {
		stmts = append(stmts, ast.If(ast.InstanceOf(ast.Name(cause), typ)).
			Then(ast.Throw(ast.Cast(typ, ast.Name(cause)))))
	}
	return append(stmts, ast.Throw(ast.New(ast.Type("java.lang.RuntimeException")).WithArgument(ast.Name(cause))))
}

// unwrapCause catches wrapper, binds its cause and runs the rethrow chain.
func unwrapCause(wrapper, name string, thrown []*ast.Node) (ast.ArgBuilder, ast.BlockBuilder) {
	const cause = generatedPrefix + "cause"
	block := ast.Block().
		WithStatement(ast.LocalDef(ast.Type("java.lang.Throwable"), cause).
			MakeFinal().
			WithInitialization(ast.Call(ast.Name(name), "getCause"))).
		WithStatements(rethrowChain(cause, thrown)...)
	return ast.Arg(ast.Type(wrapper), name), block
}
