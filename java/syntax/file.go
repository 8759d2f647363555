// Package syntax hosts handlers on top of a tree-sitter Java parse tree.
//
// A File is one parse of one compilation unit. It lists the annotation
// sites found in the source and collects the text edits produced while the
// sites are handled. Edits are only applied by Commit, which returns the new
// source; the tree itself is never mutated, so a File is parsed again for
// every pass.
package syntax

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

var (
	// ErrAlreadyReplaced is returned by a second ReplaceBody on one Method.
	ErrAlreadyReplaced = errors.New("method body already replaced")

	// ErrNotReplaced is returned by Rebuild without a preceding ReplaceBody.
	ErrNotReplaced = errors.New("method body not replaced")

	// ErrAlreadyRebuilt is returned by a second Rebuild on one Method.
	ErrAlreadyRebuilt = errors.New("method already rebuilt")

	// ErrNotRebuilt is returned by Commit when a replaced body was never
	// rebuilt.
	ErrNotRebuilt = errors.New("replaced method body not rebuilt")

	// ErrOverlappingEdits is returned by Commit when two edits share bytes.
	ErrOverlappingEdits = errors.New("overlapping edits")

	// ErrForeignMethod is returned by a pass given a Method from another host.
	ErrForeignMethod = errors.New("method does not belong to this parser")
)

const defaultIndentUnit = "    "

type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open byte range of the source.
type Span struct {
	Start int
	End   int
}

func (s Span) Overlaps(o Span) bool {
	return s.Start < o.End && o.Start < s.End
}

// Import is one import declaration of a compilation unit.
type Import struct {
	Path     string
	Static   bool
	Wildcard bool
}

type Option func(*File)

// WithIndentUnit fixes the indentation written per nesting level in
// generated bodies. The empty string detects it from each method.
func WithIndentUnit(unit string) Option {
	return func(f *File) {
		f.indentUnit = unit
	}
}

type File struct {
	Path string

	src        []byte
	tree       *sitter.Tree
	indentUnit string

	sites   []*Site
	edits   []edit
	methods []*Method
}

// Parse parses src. Syntax errors are not reported as an error: the parts
// of the tree they affect report themselves as incompletely parsed.
func Parse(ctx context.Context, path string, src []byte, opts ...Option) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	f := &File{Path: path, src: src, tree: tree}
	for _, opt := range opts {
		opt(f)
	}
	f.sites = f.collectSites()
	return f, nil
}

func (f *File) Close() {
	f.tree.Close()
}

func (f *File) Source() []byte {
	return f.src
}

// HasErrors reports whether any part of the unit failed to parse.
func (f *File) HasErrors() bool {
	return f.tree.RootNode().HasError()
}

// Package returns the declared package name, or "" for the default package.
func (f *File) Package() string {
	root := f.tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		decl := root.NamedChild(i)
		if decl.Type() != "package_declaration" {
			continue
		}
		for j := 0; j < int(decl.NamedChildCount()); j++ {
			if name := decl.NamedChild(j); isName(name) {
				return f.text(name)
			}
		}
	}
	return ""
}

func (f *File) Imports() []Import {
	var imports []Import
	root := f.tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		decl := root.NamedChild(i)
		if decl.Type() != "import_declaration" {
			continue
		}
		var imp Import
		for j := 0; j < int(decl.ChildCount()); j++ {
			child := decl.Child(j)
			switch {
			case child.Type() == "static":
				imp.Static = true
			case child.Type() == "asterisk":
				imp.Wildcard = true
			case isName(child):
				imp.Path = f.text(child)
			}
		}
		imports = append(imports, imp)
	}
	return imports
}

// Sites returns the annotation occurrences of the unit in document order.
func (f *File) Sites() []*Site {
	return slices.Clone(f.sites)
}

func (f *File) collectSites() []*Site {
	var sites []*Site
	walk(f.tree.RootNode(), func(n *sitter.Node) bool {
		if n.Type() == "marker_annotation" || n.Type() == "annotation" {
			sites = append(sites, &Site{file: f, node: n})
		}
		return true
	})
	return sites
}

// Touched reports whether an edit recorded since the last Commit overlaps
// span.
func (f *File) Touched(span Span) bool {
	for _, e := range f.edits {
		if e.span.Overlaps(span) {
			return true
		}
	}
	return false
}

// RemoveAnnotation deletes site from the source. A line holding nothing but
// the annotation is removed entirely.
func (f *File) RemoveAnnotation(site *Site) {
	start, end := int(site.node.StartByte()), int(site.node.EndByte())
	lineStart := bytes.LastIndexByte(f.src[:start], '\n') + 1
	lineEnd := len(f.src)
	if i := bytes.IndexByte(f.src[end:], '\n'); i >= 0 {
		lineEnd = end + i + 1
	}
	before := string(f.src[lineStart:start])
	after := string(f.src[end:lineEnd])
	if strings.TrimSpace(before) == "" && strings.TrimSpace(after) == "" {
		f.addEdit(Span{Start: lineStart, End: lineEnd}, "")
		return
	}
	for end < len(f.src) && (f.src[end] == ' ' || f.src[end] == '\t') {
		end++
	}
	f.addEdit(Span{Start: start, End: end}, "")
}

// Commit applies every recorded edit and returns the new source. The File
// keeps describing the old source; parse the result for the next pass.
func (f *File) Commit() ([]byte, error) {
	for _, m := range f.methods {
		if m.body != nil && !m.rebuilt {
			return nil, fmt.Errorf("commit %s: %w", m.Name(), ErrNotRebuilt)
		}
	}
	out, err := applyEdits(f.src, 0, f.edits)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", f.Path, err)
	}
	f.edits = nil
	return out, nil
}

func (f *File) addEdit(span Span, text string) {
	f.edits = append(f.edits, edit{span: span, text: text})
}

func (f *File) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(f.src)
}

func (f *File) position(offset int) Position {
	line := 1 + bytes.Count(f.src[:offset], []byte("\n"))
	lineStart := bytes.LastIndexByte(f.src[:offset], '\n') + 1
	return Position{Offset: offset, Line: line, Column: offset - lineStart + 1}
}

// lineIndent returns the leading whitespace of the line containing offset.
func (f *File) lineIndent(offset int) string {
	lineStart := bytes.LastIndexByte(f.src[:offset], '\n') + 1
	i := lineStart
	for i < len(f.src) && (f.src[i] == ' ' || f.src[i] == '\t') {
		i++
	}
	return string(f.src[lineStart:i])
}

func isName(n *sitter.Node) bool {
	return n.Type() == "identifier" || n.Type() == "scoped_identifier"
}

// walk visits n and its descendants in document order. fn returning false
// skips the children of the node it was called with.
func walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), fn)
	}
}
