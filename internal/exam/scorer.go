package exam

import (
	"math"
	"time"

	"github.com/stemsi/gatemock-backend/internal/model"
)

// Score counts answers matching the key and converts them to a rounded
// percentage. Unanswered slots never match.
func Score(questions []model.Question, answers []int) (correct, score int) {
	for i, q := range questions {
		if i < len(answers) && answers[i] != Unanswered && answers[i] == q.CorrectAnswer {
			correct++
		}
	}
	return correct, Percentage(correct, len(questions))
}

// Percentage is round(part/total*100), and 0 for an empty total.
func Percentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// BuildResult turns an outcome into the record appended to the result store.
func BuildResult(cfg Config, o Outcome, id string, at time.Time) model.ExamResult {
	return model.ExamResult{
		ID:               id,
		Date:             at.UTC(),
		Score:            o.Score,
		TotalQuestions:   o.Total,
		CorrectAnswers:   o.Correct,
		Subject:          cfg.Subject,
		TestName:         cfg.ResultLabel(),
		TimeTakenSeconds: o.ElapsedSeconds,
	}
}

// NextStatistics folds score into the running totals:
// average' = round2((average*taken + score) / (taken+1)).
// Fields owned by other features pass through unchanged.
func NextStatistics(old model.UserStatistics, score int) model.UserStatistics {
	next := old
	next.TestsTaken = old.TestsTaken + 1
	total := old.AverageScore*float64(old.TestsTaken) + float64(score)
	next.AverageScore = round2(total / float64(next.TestsTaken))
	return next
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
