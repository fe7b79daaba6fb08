package exam_test

import (
	"fmt"

	"github.com/stemsi/gatemock-backend/internal/model"
)

func bankQuestion(id string, subject model.Subject, topic string, correct int) model.Question {
	return model.Question{
		ID:            id,
		Text:          "question " + id,
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: correct,
		Explanation:   "because " + id,
		Subject:       subject,
		Topic:         topic,
		Difficulty:    model.DifficultyEasy,
	}
}

func bankOf(n int, subject model.Subject, topic string) []model.Question {
	out := make([]model.Question, n)
	for i := range out {
		out[i] = bankQuestion(fmt.Sprintf("%s-%d", topic, i), subject, topic, i%4)
	}
	return out
}
