package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/exam"
	"github.com/stemsi/gatemock-backend/internal/model"
)

// DefaultTopic is assigned to admin questions submitted without a topic.
const DefaultTopic = "General"

// QuestionService handles question bank authoring.
type QuestionService struct {
	bank  QuestionBank
	newID func() string
	log   zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(bank QuestionBank, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		bank:  bank,
		newID: uuid.NewString,
		log:   log.With().Str("component", "question_service").Logger(),
	}
}

// List returns the whole bank in insertion order.
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	questions, err := s.bank.GetAllQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return questions, nil
}

// Add appends a new question built from req. The request is expected to be
// validated already; text, explanation and options must still be non-blank
// once trimmed.
func (s *QuestionService) Add(ctx context.Context, req model.AddQuestionRequest) (*model.Question, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = DefaultTopic
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: blank question text", exam.ErrInvalidSelection)
	}
	explanation := strings.TrimSpace(req.Explanation)
	if explanation == "" {
		return nil, fmt.Errorf("%w: blank explanation", exam.ErrInvalidSelection)
	}

	opts := make([]string, len(req.Options))
	for i, o := range req.Options {
		opts[i] = strings.TrimSpace(o)
		if opts[i] == "" {
			return nil, fmt.Errorf("%w: blank option %d", exam.ErrInvalidSelection, i)
		}
	}

	q := model.Question{
		ID:            s.newID(),
		Text:          text,
		Options:       opts,
		CorrectAnswer: *req.CorrectAnswer,
		Explanation:   explanation,
		Subject:       model.Subject(req.Subject),
		Topic:         topic,
		Difficulty:    model.Difficulty(req.Difficulty),
	}

	if err := s.bank.AppendQuestion(ctx, q); err != nil {
		s.log.Error().Err(err).Str("question_id", q.ID).Msg("Failed to append question")
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.log.Info().Str("question_id", q.ID).Str("subject", string(q.Subject)).Str("topic", q.Topic).Msg("Question added")
	return &q, nil
}
