package handler

import "github.com/dhamidi/weave/java/ast"

// Method is the narrow view of a method declaration that handlers work
// against. Implementations wrap a host parse tree; nothing else in this
// package touches host types.
type Method interface {
	Name() string

	// EnclosingType is the simple name of the type declaring the method, or
	// "" when that type is anonymous.
	EnclosingType() string

	// WasCompletelyParsed is false while the host has not parsed the whole
	// method. Such methods are deferred, never transformed.
	WasCompletelyParsed() bool

	IsAbstract() bool
	IsEmpty() bool

	// ReturnType is the declared return type as a Type fragment.
	ReturnType() *ast.Node

	// ThrownExceptions lists the declared thrown types in declaration order.
	ThrownExceptions() []*ast.Node

	// Statements is a snapshot of the current body, in order.
	Statements() ([]*ast.Node, error)

	// CompletesNormally reports whether control can fall off the end of the
	// body, following the Java reachability rules.
	CompletesNormally() bool

	// ReplaceBody swaps the whole body for block. It may be called once.
	ReplaceBody(block *ast.Node) error

	// Rebuild asks the host to resolve the replaced body again. It must be
	// called exactly once, after ReplaceBody.
	Rebuild() error
}

// Site is an annotation occurrence handed to a handler.
type Site interface {
	// MethodOf resolves the method the annotation is attached to.
	MethodOf() (Method, bool)
}

// A Visitor rewrites the statements of a method in place.
type Visitor interface {
	Visit(m Method) error
}

// Passes are host-provided rewrites run over a method body before it is
// embedded into generated code.
type Passes interface {
	// QualifyThis returns a visitor that rewrites unqualified self
	// references to typeName.this.
	QualifyThis(typeName string) Visitor

	// ReturnValue returns a visitor that turns bare "return;" statements
	// into "return <expr>;".
	ReturnValue(expr string) Visitor
}
