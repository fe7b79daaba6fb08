package service

import (
	"context"
	"fmt"
	"time"

	"github.com/stemsi/gatemock-backend/internal/exam"
	"github.com/stemsi/gatemock-backend/internal/model"
)

// recentResultCount is how many results the performance chart shows.
const recentResultCount = 5

// Dashboard is the landing page summary.
type Dashboard struct {
	Stats            model.UserStatistics `json:"stats"`
	RecentResults    []model.RecentResult `json:"recent_results"`
	QuestionOfTheDay *model.Question      `json:"question_of_the_day,omitempty"`
}

// DashboardService aggregates statistics, recent results and the daily
// question.
type DashboardService struct {
	bank    QuestionBank
	results ResultStore
	stats   StatsStore
	now     func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(bank QuestionBank, results ResultStore, stats StatsStore) *DashboardService {
	return &DashboardService{
		bank:    bank,
		results: results,
		stats:   stats,
		now:     time.Now,
	}
}

// SetClock replaces the clock used to pick the question of the day.
func (s *DashboardService) SetClock(now func() time.Time) {
	s.now = now
}

// Get builds the dashboard.
func (s *DashboardService) Get(ctx context.Context) (*Dashboard, error) {
	stats, err := s.stats.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	results, err := s.Results(ctx)
	if err != nil {
		return nil, err
	}

	bank, err := s.bank.GetAllQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	d := &Dashboard{
		Stats:         stats,
		RecentResults: RecentResults(results),
	}
	if q, ok := exam.QuestionOfTheDay(bank, s.now()); ok {
		d.QuestionOfTheDay = &q
	}
	return d, nil
}

// Results returns the full result history, oldest first.
func (s *DashboardService) Results(ctx context.Context) ([]model.ExamResult, error) {
	results, err := s.results.GetAllResults(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return results, nil
}

// RecentResults labels the last five results T1..T5, oldest first.
func RecentResults(results []model.ExamResult) []model.RecentResult {
	if len(results) > recentResultCount {
		results = results[len(results)-recentResultCount:]
	}
	out := make([]model.RecentResult, len(results))
	for i, r := range results {
		out[i] = model.RecentResult{
			Name:     fmt.Sprintf("T%d", i+1),
			Score:    r.Score,
			FullTest: r.TestName,
		}
	}
	return out
}
