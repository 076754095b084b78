package domain

// UserStat is one row of the completion leaderboard.
type UserStat struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// HourStat counts completions within one hour of the day (0-23).
// Hours without completions are omitted, not zero-filled.
type HourStat struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// Stats is the aggregated completion report over the current task set.
type Stats struct {
	TotalTasks     int        `json:"total_tasks"`
	CompletedTasks int        `json:"completed_tasks"`
	LateTasks      int        `json:"late_tasks"`
	CompletionRate int        `json:"completion_rate"`
	ByUser         []UserStat `json:"by_user"`
	ByHour         []HourStat `json:"by_hour"`
}
