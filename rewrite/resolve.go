package rewrite

import (
	"strings"

	"github.com/dhamidi/weave/java/syntax"
)

// resolver turns annotation names as written into qualified type names,
// following the compilation unit's imports.
type resolver struct {
	pkg     string
	imports []syntax.Import
	aliases map[string]string
	known   func(qualified string) bool
}

func (r resolver) resolve(written string) (string, bool) {
	if qualified, ok := r.aliases[written]; ok {
		return qualified, r.known(qualified)
	}
	if strings.Contains(written, ".") {
		return written, r.known(written)
	}

	for _, imp := range r.imports {
		if imp.Static || imp.Wildcard {
			continue
		}
		if imp.Path == written || strings.HasSuffix(imp.Path, "."+written) {
			// A single-type import shadows everything else, known or not.
			return imp.Path, r.known(imp.Path)
		}
	}

	if r.pkg != "" {
		if candidate := r.pkg + "." + written; r.known(candidate) {
			return candidate, true
		}
	}

	for _, imp := range r.imports {
		if imp.Static || !imp.Wildcard {
			continue
		}
		if candidate := imp.Path + "." + written; r.known(candidate) {
			return candidate, true
		}
	}
	return "", false
}
