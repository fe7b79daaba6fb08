package exam

import (
	"fmt"

	"github.com/stemsi/gatemock-backend/internal/model"
)

// Unanswered marks an answer slot with no selected option.
const Unanswered = -1

// QuestionStatus is the palette state of one question.
type QuestionStatus string

const (
	StatusNotVisited QuestionStatus = "not_visited"
	StatusVisited    QuestionStatus = "visited"
	StatusAnswered   QuestionStatus = "answered"
)

// Session is the in-exam state of one attempt. It is not safe for concurrent
// use; the owner serializes access.
type Session struct {
	cfg       Config
	questions []model.Question
	answers   []int
	status    []QuestionStatus
	current   int
	planned   int
	remaining int
	submitted bool
}

// NewSession starts an attempt over questions. The first question is the
// current one and counts as visited.
func NewSession(cfg Config, questions []model.Question) *Session {
	n := len(questions)

	qs := make([]model.Question, n)
	copy(qs, questions)

	answers := make([]int, n)
	status := make([]QuestionStatus, n)
	for i := range answers {
		answers[i] = Unanswered
		status[i] = StatusNotVisited
	}
	if n > 0 {
		status[0] = StatusVisited
	}

	planned := cfg.PlannedSeconds(n)
	return &Session{
		cfg:       cfg,
		questions: qs,
		answers:   answers,
		status:    status,
		planned:   planned,
		remaining: planned,
	}
}

// Len is the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Config returns the selection the session was built from.
func (s *Session) Config() Config { return s.cfg }

// CurrentIndex is the question being shown.
func (s *Session) CurrentIndex() int { return s.current }

// TimeRemaining is the countdown in seconds.
func (s *Session) TimeRemaining() int { return s.remaining }

// PlannedSeconds is the countdown the session started with.
func (s *Session) PlannedSeconds() int { return s.planned }

// Submitted reports whether the attempt has been scored.
func (s *Session) Submitted() bool { return s.submitted }

// Active reports whether answers and ticks are still accepted.
func (s *Session) Active() bool { return !s.submitted }

// Questions returns a copy of the question list.
func (s *Session) Questions() []model.Question {
	out := make([]model.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Answers returns a copy of the answer slots.
func (s *Session) Answers() []int {
	out := make([]int, len(s.answers))
	copy(out, s.answers)
	return out
}

// Status returns a copy of the palette.
func (s *Session) Status() []QuestionStatus {
	out := make([]QuestionStatus, len(s.status))
	copy(out, s.status)
	return out
}

func (s *Session) checkIndex(index int) error {
	if index < 0 || index >= len(s.questions) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, len(s.questions))
	}
	return nil
}

// SelectAnswer records option for question index. Re-selecting overwrites.
// The current question does not change.
func (s *Session) SelectAnswer(index, option int) error {
	if s.submitted {
		return ErrAlreadySubmitted
	}
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if option < 0 || option >= len(s.questions[index].Options) {
		return fmt.Errorf("%w: %d", ErrOptionOutOfRange, option)
	}
	s.answers[index] = option
	s.status[index] = StatusAnswered
	return nil
}

// Navigate makes index the current question, promoting it from not visited
// to visited. An answered status is kept.
func (s *Session) Navigate(index int) error {
	if s.submitted {
		return ErrAlreadySubmitted
	}
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.current = index
	if s.status[index] == StatusNotVisited {
		s.status[index] = StatusVisited
	}
	return nil
}

// Next moves to the following question, staying on the last one.
func (s *Session) Next() error {
	return s.Navigate(min(s.current+1, len(s.questions)-1))
}

// Previous moves to the preceding question, staying on the first one.
func (s *Session) Previous() error {
	return s.Navigate(max(s.current-1, 0))
}

// MarkForReview flags index as visited. The stored answer is kept, but an
// answered question is shown as visited afterwards.
func (s *Session) MarkForReview(index int) error {
	if s.submitted {
		return ErrAlreadySubmitted
	}
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.status[index] = StatusVisited
	return nil
}

// Tick advances the countdown by one second. It reports true exactly once:
// on the tick that reaches zero. Ticks after that, or after submission, are
// no-ops.
func (s *Session) Tick() bool {
	if s.submitted || s.remaining <= 0 {
		return false
	}
	s.remaining--
	return s.remaining == 0
}

// Outcome is the scored state of a submitted session.
type Outcome struct {
	Total          int `json:"total"`
	Correct        int `json:"correct"`
	Score          int `json:"score"`
	ElapsedSeconds int `json:"elapsed_seconds"`
}

// Submit scores the attempt and closes it. Unanswered slots count as wrong.
func (s *Session) Submit() (Outcome, error) {
	if s.submitted {
		return Outcome{}, ErrAlreadySubmitted
	}
	s.submitted = true

	correct, score := Score(s.questions, s.answers)
	return Outcome{
		Total:          len(s.questions),
		Correct:        correct,
		Score:          score,
		ElapsedSeconds: s.planned - s.remaining,
	}, nil
}

// Palette counts questions per status.
type Palette struct {
	Answered   int `json:"answered"`
	Visited    int `json:"visited"`
	NotVisited int `json:"not_visited"`
}

// Snapshot is a read-only view of a session for clients. Answer keys are
// never included.
type Snapshot struct {
	Config         Config                     `json:"config"`
	Questions      []model.QuestionForStudent `json:"questions"`
	Answers        []int                      `json:"answers"`
	Status         []QuestionStatus           `json:"status"`
	CurrentIndex   int                        `json:"current_index"`
	TimeRemaining  int                        `json:"time_remaining"`
	PlannedSeconds int                        `json:"planned_seconds"`
	Submitted      bool                       `json:"submitted"`
	Palette        Palette                    `json:"palette"`
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	qs := make([]model.QuestionForStudent, len(s.questions))
	for i, q := range s.questions {
		qs[i] = q.ForStudent()
	}

	var p Palette
	for _, st := range s.status {
		switch st {
		case StatusAnswered:
			p.Answered++
		case StatusVisited:
			p.Visited++
		default:
			p.NotVisited++
		}
	}

	return Snapshot{
		Config:         s.cfg,
		Questions:      qs,
		Answers:        s.Answers(),
		Status:         s.Status(),
		CurrentIndex:   s.current,
		TimeRemaining:  s.remaining,
		PlannedSeconds: s.planned,
		Submitted:      s.submitted,
		Palette:        p,
	}
}
