package handler

import "strings"

// State is a step of the per-method transformation state machine.
type State int

const (
	StateStart State = iota
	StateCheckingShape
	StateRejected
	StateDeferred
	StateRewritingSelf
	StateSynthesizing
	StateInstalling
	StateDone
)

var stateNames = map[State]string{
	StateStart:         "START",
	StateCheckingShape: "CHECKING_SHAPE",
	StateRejected:      "REJECTED",
	StateDeferred:      "DEFERRED",
	StateRewritingSelf: "REWRITING_SELF",
	StateSynthesizing:  "SYNTHESIZING",
	StateInstalling:    "INSTALLING",
	StateDone:          "DONE",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether a pass ends in s. Deferred is terminal for the
// current pass only; the scheduler starts over on the next one.
func (s State) IsTerminal() bool {
	return s == StateRejected || s == StateDeferred || s == StateDone
}

// Outcome is what a handler reports for one site in one pass.
type Outcome struct {
	State State

	// Usage is set when State is StateRejected.
	Usage *UsageError

	// Trace lists every state entered, starting with StateStart.
	Trace []State
}

func (o Outcome) String() string {
	names := make([]string, len(o.Trace))
	for i, s := range o.Trace {
		names[i] = s.String()
	}
	return strings.Join(names, " -> ")
}

type machine struct {
	trace []State
}

func newMachine() *machine {
	return &machine{trace: []State{StateStart}}
}

func (m *machine) enter(s State) {
	m.trace = append(m.trace, s)
}

func (m *machine) finish(s State) Outcome {
	m.enter(s)
	return Outcome{State: s, Trace: m.trace}
}

func (m *machine) reject(err *UsageError) Outcome {
	out := m.finish(StateRejected)
	out.Usage = err
	return out
}
