package domain

import "time"

// Case is a classification template applied to Points: a title, a severity
// classification ("good", "bad", "blocker", "neutral") and a score.
type Case struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Classification string    `json:"classification"`
	Score          int       `json:"score"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
