package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry(&fakePasses{}, EventQueue)

	assert.Equal(t, []string{
		"lombok.DoPrivileged",
		"lombok.SwingInvokeAndWait",
		"lombok.SwingInvokeLater",
	}, r.Names())

	later, ok := r.Lookup("lombok.SwingInvokeLater")
	require.True(t, ok)
	assert.Equal(t, InvokeLater, later.(*SwingInvoke).Mode())

	wait, ok := r.Lookup("lombok.SwingInvokeAndWait")
	require.True(t, ok)
	assert.Equal(t, InvokeAndWait, wait.(*SwingInvoke).Mode())

	_, ok = r.Lookup("SwingInvokeLater")
	assert.False(t, ok, "lookup is by qualified name only")
}

func TestRegistryProvideReplaces(t *testing.T) {
	r := NewRegistry()
	first := NewSwingInvokeLater(&fakePasses{}, EventQueue)
	second := NewSwingInvokeLater(&fakePasses{}, Dispatcher{Class: "javax.swing.SwingUtilities", Guard: "isEventDispatchThread"})

	assert.Same(t, r, r.Provide(first))
	r.Provide(second)

	h, ok := r.Lookup(SwingInvokeLaterAnnotation)
	require.True(t, ok)
	assert.Same(t, second, h)
	assert.Len(t, r.Names(), 1)
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "REWRITING_SELF", StateRewritingSelf.String())
	assert.Equal(t, "UNKNOWN", State(99).String())
	assert.True(t, StateDeferred.IsTerminal())
	assert.False(t, StateInstalling.IsTerminal())
}
