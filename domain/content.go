package domain

import "time"

// Rule is one house-rules document shown to staff.
type Rule struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedBy string    `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TrainingVideo links one onboarding video shown on the training page.
type TrainingVideo struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	YoutubeURL  string    `json:"youtube_url"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}
