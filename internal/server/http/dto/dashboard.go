package dto

// DashboardEntry is one leaderboard row.
type DashboardEntry struct {
	Username string `json:"username"`
	Streak   int    `json:"streak"`
}

// DashboardResponse wraps the leaderboard payload.
type DashboardResponse struct {
	Message   string           `json:"message"`
	Dashboard []DashboardEntry `json:"dashboard"`
}
