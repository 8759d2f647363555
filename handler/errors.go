package handler

import (
	"fmt"
	"strings"
)

// UsageError reports an annotation placed where it cannot be honored. The
// method it refers to is left unmodified.
type UsageError struct {
	Annotation string
	Message    string
}

func (e *UsageError) Error() string {
	return e.Message
}

func usageError(annotation, format string) *UsageError {
	return &UsageError{
		Annotation: annotation,
		Message:    fmt.Sprintf(format, simpleName(annotation)),
	}
}

func canBeUsedOnMethodOnly(annotation string) *UsageError {
	return usageError(annotation, "@%s is legal only on methods.")
}

func canBeUsedOnConcreteMethodOnly(annotation string) *UsageError {
	return usageError(annotation, "@%s is legal only on concrete, non-empty methods.")
}

func cannotQualifyThis(annotation string) *UsageError {
	return usageError(annotation, "@%s cannot qualify 'this' inside an anonymous type.")
}

func simpleName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
