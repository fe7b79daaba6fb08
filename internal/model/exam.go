package model

import "time"

// ExamResult is the record of one completed mock test. Results are append-only.
type ExamResult struct {
	ID               string    `json:"id"`
	Date             time.Time `json:"date"`
	Score            int       `json:"score"` // 0-100, rounded
	TotalQuestions   int       `json:"totalQuestions"`
	CorrectAnswers   int       `json:"correctAnswers"`
	Subject          Subject   `json:"subject"`
	TestName         string    `json:"testName"`
	TimeTakenSeconds int       `json:"timeTakenSeconds"`
}

// UserStatistics aggregates a user's activity. The exam engine owns
// TestsTaken and AverageScore; the other fields belong to other features.
type UserStatistics struct {
	TestsTaken   int     `json:"testsTaken"`
	AverageScore float64 `json:"averageScore"`
	HoursStudied int     `json:"hoursStudied"`
	StreakDays   int     `json:"streakDays"`
}

// DefaultStatistics is what a fresh install reports before anything is saved.
func DefaultStatistics() UserStatistics {
	return UserStatistics{
		TestsTaken:   12,
		AverageScore: 68.5,
		HoursStudied: 45,
		StreakDays:   5,
	}
}

// RecentResult is one point of the dashboard performance chart.
type RecentResult struct {
	Name     string `json:"name"`
	Score    int    `json:"score"`
	FullTest string `json:"full_test"`
}

// PersistStage names the write that failed while recording a result.
type PersistStage string

const (
	StageResult PersistStage = "result"
	StageStats  PersistStage = "stats"
)

// PendingWrite is a recorded result whose persistence has not completed.
// Stage is the first write still outstanding: a result-stage entry still
// needs both writes, a stats-stage entry only the statistics update.
type PendingWrite struct {
	Stage    PersistStage `json:"stage"`
	Result   ExamResult   `json:"result"`
	Attempts int          `json:"attempts"`
	LastErr  string       `json:"lastError,omitempty"`
}
