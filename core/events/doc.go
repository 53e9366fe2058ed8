// Package events defines the schedule generation events emitted on the event
// bus.
//
// Available event types:
//   - StrategyEvent: generator selection and fallback information
//   - ScheduleEvent: outcome of a completed schedule generation
package events
