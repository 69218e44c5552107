package emulator

import (
	"github.com/ezrec/ucircuit/circuit"
)

// OutcomeKind classifies the result of a run.
type OutcomeKind int

//go:generate go tool stringer -linecomment -type=OutcomeKind
const (
	OUTCOME_SUCCESS          = OutcomeKind(0) // success
	OUTCOME_CIRCUIT_INVALID  = OutcomeKind(1) // circuit invalid
	OUTCOME_CODE_INVALID     = OutcomeKind(2) // code invalid
	OUTCOME_EXECUTION_FAILED = OutcomeKind(3) // execution failed
	OUTCOME_EXHAUSTED        = OutcomeKind(4) // exhausted
)

// Outcome is the result of a run.
type Outcome struct {
	Kind   OutcomeKind
	Reason string         // Unmet circuit requirement, for OUTCOME_CIRCUIT_INVALID.
	Err    error          // Failure detail, nil on success.
	Graph  *circuit.Graph // Resulting circuit, only on success.
}

// Ok returns true for a successful run.
func (outcome Outcome) Ok() bool {
	return outcome.Kind == OUTCOME_SUCCESS
}

func (outcome Outcome) String() string {
	switch outcome.Kind {
	case OUTCOME_SUCCESS, OUTCOME_EXHAUSTED:
		return f(outcome.Kind.String())
	case OUTCOME_CIRCUIT_INVALID:
		return f("%v: %v", outcome.Kind, outcome.Reason)
	default:
		return f("%v: %v", outcome.Kind, outcome.Err)
	}
}
