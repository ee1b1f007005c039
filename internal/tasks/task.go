package tasks

import "time"

type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Details     string     `json:"details"`
	CreatedAt   time.Time  `json:"createdAt"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Done        bool       `json:"done"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
