package task

// RoutingKeyScheduleRecalculated is published after a schedule is rebuilt.
const RoutingKeyScheduleRecalculated = "planner.schedule.recalculated"

// ScheduleRecalculated describes a freshly computed schedule.
type ScheduleRecalculated struct {
	Reason       string `json:"reason"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	TaskCount    int    `json:"task_count"`
	TotalMinutes int    `json:"total_minutes"`
}
