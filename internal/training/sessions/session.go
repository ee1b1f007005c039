package sessions

import "time"

type WeekType string

const (
	WeekTypeKid    WeekType = "kid"
	WeekTypeNonKid WeekType = "non-kid"
)

func (wt WeekType) IsKid() bool {
	return wt == WeekTypeKid
}

// Set metrics are all nullable, not every exercise uses every metric.
type Set struct {
	SetNumber int      `json:"setNumber"`
	Weight    *float64 `json:"weight,omitempty"`
	Reps      *int     `json:"reps,omitempty"`
	TimeSec   *int     `json:"timeSec,omitempty"`
	DistanceM *float64 `json:"distanceM,omitempty"`
	RPE       *float64 `json:"rpe,omitempty"`
}

type SessionExercise struct {
	ID         int    `json:"id"`
	ExerciseID int    `json:"exerciseId"`
	Name       string `json:"name,omitempty"`
	OrderIndex int    `json:"orderIndex"`
	Sets       []Set  `json:"sets,omitempty"`
}

type Session struct {
	ID          int               `json:"id"`
	Date        time.Time         `json:"date"`
	Type        string            `json:"type"`
	WeekType    *WeekType         `json:"weekType,omitempty"`
	RPE         *float64          `json:"rpe,omitempty"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
	Exercises   []SessionExercise `json:"exercises,omitempty"`
}

// HistoryEntry is one past performance of an exercise, newest first
// when returned from the repo.
type HistoryEntry struct {
	SessionID   int       `json:"sessionId"`
	SessionDate time.Time `json:"sessionDate"`
	Sets        []Set     `json:"sets,omitempty"`
}

type FrequencyStats struct {
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
}
