package dto

// SubjectStatsDTO is the per-subject bucket of a user's analytics.
// Attempts whose quiz no longer resolves are excluded from these buckets
// but still count toward the overall totals.
type SubjectStatsDTO struct {
	Subject           string  `json:"subject"`
	Attempts          int     `json:"attempts"`
	AveragePercentage float64 `json:"average_percentage"`
}

// AnalyticsSummaryDTO folds all of a user's attempts into one summary.
// HasAttempts disambiguates a genuine 0% average from "never attempted".
type AnalyticsSummaryDTO struct {
	TotalAttempts     int                 `json:"total_attempts"`
	HasAttempts       bool                `json:"has_attempts"`
	AveragePercentage float64             `json:"average_percentage"`
	Subjects          []SubjectStatsDTO   `json:"subjects"`
	RecentAttempts    []AttemptSummaryDTO `json:"recent_attempts"`
}
