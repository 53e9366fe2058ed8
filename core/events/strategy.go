package events

// StrategyEvent is emitted when the planner chooses a schedule strategy.
// Action can be "generator_attempt", "generator_failure", or
// "rule_based_fallback".
type StrategyEvent struct {
	RequestID string
	Action    string
	Err       error
}

// ScheduleEvent is emitted once per completed generation request.
type ScheduleEvent struct {
	RequestID string
	UserID    string
	Items     int
	Fallback  bool
}
