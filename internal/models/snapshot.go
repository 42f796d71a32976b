package models

// DaySnapshot holds one calendar day of analytics counters as read back from
// the aggregate store. Map keys are project keys; a project with no recorded
// activity for a counter is simply absent from that map.
type DaySnapshot struct {
	Date            string         `json:"date"`
	TotalVisits     int            `json:"total_visits"`
	ProjectViews    map[string]int `json:"project_views"`
	Upvotes         map[string]int `json:"upvotes"`
	UpvoteEvents    map[string]int `json:"upvote_events"`
	UnvoteEvents    map[string]int `json:"unvote_events"`
	SessionDuration map[string]int `json:"session_duration"`
}

// NewDaySnapshot returns an empty snapshot for the given date with all maps
// allocated.
func NewDaySnapshot(date string) DaySnapshot {
	return DaySnapshot{
		Date:            date,
		ProjectViews:    make(map[string]int),
		Upvotes:         make(map[string]int),
		UpvoteEvents:    make(map[string]int),
		UnvoteEvents:    make(map[string]int),
		SessionDuration: make(map[string]int),
	}
}
