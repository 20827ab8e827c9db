package domain

// RunState tracks one job through the staging/assembly/execution state
// machine. Transitions are strictly forward; a failure leaves the run in
// the last state it reached, recorded in the run log.
type RunState string

// Run states in transition order. A staging failure aborts before
// StateAssembled; an execution failure aborts before StateUploaded.
const (
	StatePendingTemplate  RunState = "PENDING_TEMPLATE"
	StateResolvedInstance RunState = "RESOLVED_INSTANCE"
	StateStaged           RunState = "STAGED"
	StateAssembled        RunState = "ASSEMBLED"
	StateExecuted         RunState = "EXECUTED"
	StateDryRunSkipped    RunState = "DRY_RUN_SKIPPED"
	StateUploaded         RunState = "UPLOADED"
	StateDone             RunState = "DONE"
)
