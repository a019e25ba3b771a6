package models

// Settings are the persisted application preferences.
type Settings struct {
	GitHubUser  string        `json:"github_user"`
	Timezone    string        `json:"timezone,omitempty"`
	HeatmapDays int           `json:"heatmap_days"`
	Focus       FocusSettings `json:"focus"`
}
