package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/weave/java/ast"
)

func TestDoPrivilegedBody(t *testing.T) {
	tests := []struct {
		name       string
		returnType string
		thrown     []string
		stmts      []string
		abrupt     bool
		expected   string
	}{
		{
			name:       "value returning",
			returnType: "int",
			stmts:      []string{"// something", "return 0;"},
			expected: `{
    return java.security.AccessController.doPrivileged(new java.security.PrivilegedAction<java.lang.Integer>() {
        public java.lang.Integer run() {
            // something
            return 0;
        }
    });
}`,
		},
		{
			name:       "reference type is not boxed",
			returnType: "String",
			stmts:      []string{"return name;"},
			expected: `{
    return java.security.AccessController.doPrivileged(new java.security.PrivilegedAction<String>() {
        public String run() {
            return name;
        }
    });
}`,
		},
		{
			name:       "void with checked exceptions",
			returnType: "void",
			thrown:     []string{"java.io.IOException"},
			stmts:      []string{"if (x) return;", "work();"},
			expected: `{
    try {
        java.security.AccessController.doPrivileged(new java.security.PrivilegedExceptionAction<java.lang.Void>() {
            public java.lang.Void run() throws java.lang.Exception {
                if (x) return null;
                work();
                return null;
            }
        });
    } catch (java.security.PrivilegedActionException $ex) {
        final java.lang.Throwable $cause = $ex.getCause();
        if ($cause instanceof java.io.IOException) throw (java.io.IOException) $cause;
        throw new java.lang.RuntimeException($cause);
    }
}`,
		},
		{
			name:       "void ending in throw",
			returnType: "void",
			stmts:      []string{"log();", "throw new IllegalStateException();", "// unreachable"},
			abrupt:     true,
			expected: `{
    java.security.AccessController.doPrivileged(new java.security.PrivilegedAction<java.lang.Void>() {
        public java.lang.Void run() {
            log();
            throw new IllegalStateException();
            // unreachable
        }
    });
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newFakeMethod("test1", tt.stmts...)
			m.returnType = tt.returnType
			m.thrown = tt.thrown
			m.abrupt = tt.abrupt

			out := handle(t, NewDoPrivileged(&fakePasses{}), m)
			require.Equal(t, StateDone, out.State)
			assert.Equal(t, tt.expected, ast.Render(m.body))
		})
	}
}

func TestDoPrivilegedStatementsFailure(t *testing.T) {
	m := newFakeMethod("test1", "work();")
	m.stmtsErr = errors.New("overlapping edits")

	_, err := NewDoPrivileged(&fakePasses{}).Handle(fakeSite{method: m})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "synthesize test1: overlapping edits")
	assert.Zero(t, m.replaced)
}

func TestDoPrivilegedRejectsAbstract(t *testing.T) {
	m := newFakeMethod("test1")
	m.abstract = true
	out := handle(t, NewDoPrivileged(&fakePasses{}), m)

	assert.Equal(t, StateRejected, out.State)
	assert.Equal(t, "@DoPrivileged is legal only on concrete, non-empty methods.", out.Usage.Message)
	assert.Zero(t, m.replaced)
}
