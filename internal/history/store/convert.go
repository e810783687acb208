package store

import (
	"github.com/msto63/llrec/foundation/ll1"
)

// Origins of recorded runs
const (
	OriginCLI = "cli"
	OriginAPI = "api"
	OriginWS  = "ws"
)

// FromOutcome converts a recognizer outcome into a run record
func FromOutcome(out *ll1.Outcome, table, origin string) *Run {
	run := &Run{
		ID:        out.RunID,
		Timestamp: out.Started,
		Origin:    origin,
		Table:     table,
		Source:    out.Source,
		Lexed:     out.Lexed(),
		Verdict:   VerdictRejected,
		Duration:  out.Duration,
	}
	if out.Accepted() {
		run.Verdict = VerdictAccepted
	}
	if res := out.Result; res != nil {
		run.Steps = res.Steps
		run.Consumed = res.Consumed
		run.Trace = res.Trace
		if res.Err != nil {
			run.ErrorKind = res.Err.Kind.String()
			run.ErrorMessage = res.Err.Error()
		}
	}
	return run
}
