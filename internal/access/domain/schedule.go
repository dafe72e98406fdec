package domain

// ScheduleDecision is the outcome of evaluating the schedule gate for a
// user at a point in time. It is produced fresh on every evaluation and
// never persisted.
type ScheduleDecision struct {
	Allowed bool
	Reason  string // human-readable denial reason; empty when allowed
}
