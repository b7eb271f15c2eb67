package models

type StatsResponse struct {
	TotalUniqueVisitors int           `json:"total_unique_visitors"`
	Clicks              []ClickRecord `json:"clicks"`
	TargetURL           string        `json:"target_url"`
}
