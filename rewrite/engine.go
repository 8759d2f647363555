// Package rewrite runs annotation handlers over Java compilation units.
//
// The Engine parses a unit, dispatches every annotation site with a
// registered handler, commits the resulting edits and parses again, until a
// pass changes nothing or the pass limit is reached. Nested annotated
// methods, and methods carrying several handled annotations, therefore take
// one pass per level.
package rewrite

import (
	"context"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/weave/handler"
	"github.com/dhamidi/weave/java/syntax"
)

const DefaultMaxPasses = 8

var log = commonlog.GetLogger("weave.rewrite")

type Option func(*Engine)

func WithMaxPasses(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPasses = n
		}
	}
}

// WithIndentUnit fixes the indentation of generated code; see
// syntax.WithIndentUnit.
func WithIndentUnit(unit string) Option {
	return func(e *Engine) {
		e.indentUnit = unit
	}
}

// WithAliases maps annotation names as written to qualified names, for
// annotation types the imports do not reveal.
func WithAliases(aliases map[string]string) Option {
	return func(e *Engine) {
		for written, qualified := range aliases {
			e.aliases[written] = qualified
		}
	}
}

type Engine struct {
	registry   *handler.Registry
	maxPasses  int
	indentUnit string
	aliases    map[string]string
}

func New(registry *handler.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry:  registry,
		maxPasses: DefaultMaxPasses,
		aliases:   map[string]string{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Passes returns the body rewrites handlers registered with this engine
// should use.
func Passes() handler.Passes {
	return syntax.Passes{}
}

type Result struct {
	// Source is the rewritten unit. It is the input when nothing changed.
	Source []byte

	// Transformed counts the annotation sites handled successfully.
	Transformed int

	// Passes is the number of parses made.
	Passes int

	Diagnostics []Diagnostic

	// Deferred lists sites whose methods were still incompletely parsed in
	// the last pass, as info diagnostics.
	Deferred []Diagnostic
}

func (r *Result) Changed() bool {
	return r.Transformed > 0
}

func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Rewrite handles every registered annotation in src. Usage problems are
// reported as diagnostics; the error is reserved for failures to parse or
// to apply edits.
func (e *Engine) Rewrite(ctx context.Context, filename string, src []byte) (*Result, error) {
	res := &Result{Source: src}
	st := &state{settled: map[string]bool{}}

	for res.Passes < e.maxPasses {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := syntax.Parse(ctx, filename, res.Source, syntax.WithIndentUnit(e.indentUnit))
		if err != nil {
			return nil, err
		}
		res.Passes++

		done := e.pass(f, st, res)
		log.Debugf("%s: pass %d handled %d sites", filename, res.Passes, done)
		if done == 0 {
			f.Close()
			return res, nil
		}

		out, err := f.Commit()
		f.Close()
		if err != nil {
			return nil, err
		}
		res.Source = out
		res.Transformed += done
	}

	log.Warningf("%s: stopped after %d passes", filename, e.maxPasses)
	return res, nil
}

// state carries what one Rewrite call learns across passes.
type state struct {
	// settled holds the keys of rejected and failed sites.
	settled map[string]bool

	// origins are the positions in the input of the handled sites still
	// present, in document order. Rewrites keep the relative order of the
	// remaining sites, so the i-th handled site of any pass is origins[i].
	origins []origin
}

type origin struct {
	pos, end syntax.Position
}

type target struct {
	site   *syntax.Site
	name   string
	handle handler.Handler
	at     origin
}

// targets lists the sites with a registered handler and pairs each with its
// position in the input.
func (e *Engine) targets(f *syntax.File, st *state) []target {
	r := resolver{
		pkg:     f.Package(),
		imports: f.Imports(),
		aliases: e.aliases,
		known: func(name string) bool {
			_, ok := e.registry.Lookup(name)
			return ok
		},
	}

	var targets []target
	for _, site := range f.Sites() {
		name, ok := r.resolve(site.Name())
		if !ok {
			continue
		}
		h, _ := e.registry.Lookup(name)
		targets = append(targets, target{
			site:   site,
			name:   name,
			handle: h,
			at:     origin{pos: site.Position(), end: site.End()},
		})
	}

	if st.origins == nil {
		st.origins = make([]origin, len(targets))
		for i, t := range targets {
			st.origins[i] = t.at
		}
	}
	if len(st.origins) != len(targets) {
		log.Warningf("%s: %d handled sites, expected %d; reporting current positions", f.Path, len(targets), len(st.origins))
		return targets
	}
	for i := range targets {
		targets[i].at = st.origins[i]
	}
	return targets
}

func (e *Engine) pass(f *syntax.File, st *state, res *Result) int {
	targets := e.targets(f, st)

	res.Deferred = nil
	done := 0
	remaining := make([]origin, 0, len(targets))
	for _, t := range targets {
		key := t.site.Key()
		if st.settled[key] || f.Touched(t.site.Owner()) {
			if !st.settled[key] {
				log.Debugf("%s: postponing %s", f.Path, key)
			}
			remaining = append(remaining, t.at)
			continue
		}

		out, err := t.handle.Handle(t.site)
		if err != nil {
			log.Errorf("%s: %s: %s", f.Path, key, err)
			res.Diagnostics = append(res.Diagnostics, diagnostic(f, t, SeverityError, fmt.Sprintf("internal error: %s", err), true))
			st.settled[key] = true
			remaining = append(remaining, t.at)
			continue
		}
		log.Debugf("%s: %s: %s", f.Path, key, out)

		switch out.State {
		case handler.StateDone:
			f.RemoveAnnotation(t.site)
			done++
			continue
		case handler.StateRejected:
			res.Diagnostics = append(res.Diagnostics, diagnostic(f, t, SeverityError, out.Usage.Message, false))
			st.settled[key] = true
		case handler.StateDeferred:
			res.Deferred = append(res.Deferred, diagnostic(f, t, SeverityInfo, "method is incompletely parsed; not rewritten", false))
		}
		remaining = append(remaining, t.at)
	}
	st.origins = remaining
	return done
}

func diagnostic(f *syntax.File, t target, severity Severity, message string, internal bool) Diagnostic {
	return Diagnostic{
		File:       f.Path,
		Line:       t.at.pos.Line,
		Column:     t.at.pos.Column,
		EndLine:    t.at.end.Line,
		EndColumn:  t.at.end.Column,
		Severity:   severity,
		Annotation: t.name,
		Message:    message,
		Internal:   internal,
	}
}
