package handler

import "github.com/dhamidi/weave/java/ast"

// Mode names the dispatch method invoked on the dispatcher class.
type Mode string

const (
	// InvokeLater queues the work and returns immediately.
	InvokeLater Mode = "invokeLater"

	// InvokeAndWait blocks until the work ran on the dispatch thread.
	InvokeAndWait Mode = "invokeAndWait"
)

const (
	SwingInvokeLaterAnnotation   = "lombok.SwingInvokeLater"
	SwingInvokeAndWaitAnnotation = "lombok.SwingInvokeAndWait"
)

// Dispatcher is the class owning the dispatch thread. Guard names its static
// "am I on the dispatch thread" method; the class must also provide static
// invokeLater and invokeAndWait methods taking a Runnable.
type Dispatcher struct {
	Class string
	Guard string
}

var EventQueue = Dispatcher{Class: "java.awt.EventQueue", Guard: "isDispatchThread"}

// SwingInvoke moves a method body onto the dispatch thread. The body runs
// inline when the caller already is on that thread.
type SwingInvoke struct {
	annotation string
	mode       Mode
	dispatcher Dispatcher
	passes     Passes
}

func NewSwingInvokeLater(passes Passes, d Dispatcher) *SwingInvoke {
	return &SwingInvoke{annotation: SwingInvokeLaterAnnotation, mode: InvokeLater, dispatcher: d, passes: passes}
}

func NewSwingInvokeAndWait(passes Passes, d Dispatcher) *SwingInvoke {
	return &SwingInvoke{annotation: SwingInvokeAndWaitAnnotation, mode: InvokeAndWait, dispatcher: d, passes: passes}
}

func (h *SwingInvoke) Annotation() string { return h.annotation }

func (h *SwingInvoke) Mode() Mode { return h.mode }

func (h *SwingInvoke) Handle(site Site) (Outcome, error) {
	return pipeline{
		annotation: h.annotation,
		passes:     h.passes,
		synthesize: h.synthesize,
	}.run(site)
}

func (h *SwingInvoke) synthesize(m Method) (ast.Builder, error) {
	stmts, err := m.Statements()
	if err != nil {
		return nil, err
	}
	field := syntheticName(m.Name(), "runnable")
	runnable := ast.Type("java.lang.Runnable")

	unit := ast.New(runnable).WithBody(ast.ClassDef("").MakeAnonymous().MakeLocal().
		WithMethod(ast.MethodDef(ast.Type("void"), "run").
			MakePublic().
			WithAnnotation(ast.Annotation(ast.Type("java.lang.Override"))).
			WithStatements(ast.Fragments(stmts)...)))

	return ast.Block().
		WithStatement(ast.LocalDef(runnable, field).MakeFinal().WithInitialization(unit)).
		WithStatement(ast.If(ast.Call(ast.Name(h.dispatcher.Class), h.dispatcher.Guard)).
			Then(ast.Block().WithStatement(ast.Call(ast.Name(field), "run"))).
			Else(h.elseBranch(field, m))), nil
}

// elseBranch is the only part of the body that depends on the mode.
func (h *SwingInvoke) elseBranch(field string, m Method) ast.BlockBuilder {
	dispatch := ast.Call(ast.Name(h.dispatcher.Class), string(h.mode)).WithArgument(ast.Name(field))
	if h.mode != InvokeAndWait {
		return ast.Block().WithStatement(dispatch)
	}
	arg, block := unwrapCause("java.lang.reflect.InvocationTargetException", generatedPrefix+"ex2", m.ThrownExceptions())
	// TODO: decide whether the InterruptedException clause should restore the
	// interrupt flag instead of swallowing it.
	return ast.Block().WithStatement(ast.Try(ast.Block().WithStatement(dispatch)).
		Catch(ast.Arg(ast.Type("java.lang.InterruptedException"), generatedPrefix+"ex1"), ast.Block()).
		Catch(arg, block))
}
