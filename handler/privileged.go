package handler

import "github.com/dhamidi/weave/java/ast"

const DoPrivilegedAnnotation = "lombok.DoPrivileged"

var boxedTypes = map[string]string{
	"void":    "java.lang.Void",
	"boolean": "java.lang.Boolean",
	"byte":    "java.lang.Byte",
	"char":    "java.lang.Character",
	"short":   "java.lang.Short",
	"int":     "java.lang.Integer",
	"long":    "java.lang.Long",
	"float":   "java.lang.Float",
	"double":  "java.lang.Double",
}

// DoPrivileged runs a method body through AccessController.doPrivileged.
// Methods declaring checked exceptions use a PrivilegedExceptionAction and
// rethrow the unwrapped cause with its declared type.
type DoPrivileged struct {
	passes Passes
}

func NewDoPrivileged(passes Passes) *DoPrivileged {
	return &DoPrivileged{passes: passes}
}

func (h *DoPrivileged) Annotation() string { return DoPrivilegedAnnotation }

func (h *DoPrivileged) Handle(site Site) (Outcome, error) {
	return pipeline{
		annotation: DoPrivilegedAnnotation,
		passes:     h.passes,
		rewrites:   h.rewrites,
		synthesize: h.synthesize,
	}.run(site)
}

func (h *DoPrivileged) rewrites(m Method) []Visitor {
	if !isVoid(m.ReturnType()) {
		return nil
	}
	return []Visitor{h.passes.ReturnValue("null")}
}

func (h *DoPrivileged) synthesize(m Method) (ast.Builder, error) {
	stmts, err := m.Statements()
	if err != nil {
		return nil, err
	}
	thrown := m.ThrownExceptions()
	boxed := boxedType(m.ReturnType())

	actionType := "java.security.PrivilegedAction"
	if len(thrown) > 0 {
		actionType = "java.security.PrivilegedExceptionAction"
	}

	run := ast.MethodDef(boxed, "run").
		MakePublic().
		WithStatements(ast.Fragments(stmts)...)
	if len(thrown) > 0 {
		run = run.WithThrownException(ast.Type("java.lang.Exception"))
	}
	if isVoid(m.ReturnType()) && m.CompletesNormally() {
		run = run.WithStatement(ast.Return(ast.Null()))
	}

	action := ast.New(ast.Type(actionType).WithTypeArgument(boxed)).
		WithBody(ast.ClassDef("").MakeAnonymous().MakeLocal().WithMethod(run))
	call := ast.Call(ast.Name("java.security.AccessController"), "doPrivileged").WithArgument(action)

	var stmt ast.Builder = call
	if !isVoid(m.ReturnType()) {
		stmt = ast.Return(call)
	}
	if len(thrown) == 0 {
		return ast.Block().WithStatement(stmt), nil
	}
	arg, block := unwrapCause("java.security.PrivilegedActionException", generatedPrefix+"ex", thrown)
	return ast.Block().WithStatement(ast.Try(ast.Block().WithStatement(stmt)).Catch(arg, block)), nil
}

func isVoid(typ *ast.Node) bool {
	return typ == nil || typ.Text() == "void"
}

func boxedType(typ *ast.Node) ast.Builder {
	if typ == nil {
		return ast.Type(boxedTypes["void"])
	}
	if boxed, ok := boxedTypes[typ.Text()]; ok {
		return ast.Type(boxed)
	}
	return typ
}
