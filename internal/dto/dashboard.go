package dto

// ── 工作台 DTO ──

// DashboardResponse 工作台概览响应
type DashboardResponse struct {
	TotalTheses  int64            `json:"total_theses"`
	StatusCounts map[string]int64 `json:"status_counts"`
	LateCount    int64            `json:"late_count"`
	RecentTheses []ThesisResponse `json:"recent_theses"`
}
