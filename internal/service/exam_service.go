package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/exam"
	"github.com/stemsi/gatemock-backend/internal/model"
)

const (
	subscriberBuffer = 16
	outboxSize       = 256
	publishTimeout   = 500 * time.Millisecond
)

// FlowUpdate is the flow state after an action. Result and Warnings are set
// when the action scored the exam.
type FlowUpdate struct {
	State    exam.State        `json:"state"`
	Result   *model.ExamResult `json:"result,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
}

// ResultView is the completed attempt shown on the result screen.
type ResultView struct {
	Result   model.ExamResult `json:"result"`
	Summary  exam.Summary     `json:"summary"`
	Warnings []string         `json:"warnings,omitempty"`
}

// ReviewView is the filtered answer breakdown of a completed attempt.
type ReviewView struct {
	Filter    exam.Filter  `json:"filter"`
	Items     []exam.Item  `json:"items"`
	Summary   exam.Summary `json:"summary"`
	Correct   []int        `json:"correct"`
	Incorrect []int        `json:"incorrect"`
	Skipped   []int        `json:"skipped"`
}

// userExam is one user's flow plus its running countdown.
type userExam struct {
	mu          sync.Mutex
	flow        *exam.Flow
	stopTimer   context.CancelFunc
	warnings    []string
	subscribers map[int]chan ExamEvent
	nextSubID   int
}

func (ue *userExam) cancelTimer() {
	if ue.stopTimer != nil {
		ue.stopTimer()
		ue.stopTimer = nil
	}
}

// ExamService drives the exam flow of every user and owns their countdowns.
type ExamService struct {
	bank      QuestionBank
	recorder  *RecorderService
	publisher EventPublisher
	newTicker exam.TickerFactory
	interval  time.Duration
	flowOpts  []exam.Option
	log       zerolog.Logger

	mu    sync.Mutex
	users map[string]*userExam

	// outbox feeds the publisher outside of any user lock.
	outbox    chan outboundEvent
	stopRelay context.CancelFunc
	relayDone chan struct{}
	closeOnce sync.Once
}

type outboundEvent struct {
	userID string
	event  ExamEvent
}

// ExamOption configures an ExamService.
type ExamOption func(*ExamService)

// WithTickerFactory replaces the wall-clock countdown ticker.
func WithTickerFactory(f exam.TickerFactory) ExamOption {
	return func(s *ExamService) { s.newTicker = f }
}

// WithTickInterval sets how long one countdown second lasts.
func WithTickInterval(d time.Duration) ExamOption {
	return func(s *ExamService) { s.interval = d }
}

// WithEventPublisher forwards exam events, e.g. to Redis.
func WithEventPublisher(p EventPublisher) ExamOption {
	return func(s *ExamService) { s.publisher = p }
}

// WithFlowOptions passes options to every flow the service creates.
func WithFlowOptions(opts ...exam.Option) ExamOption {
	return func(s *ExamService) { s.flowOpts = append(s.flowOpts, opts...) }
}

// NewExamService creates a new ExamService.
func NewExamService(bank QuestionBank, recorder *RecorderService, log zerolog.Logger, opts ...ExamOption) *ExamService {
	s := &ExamService{
		bank:      bank,
		recorder:  recorder,
		newTicker: exam.NewRealTicker,
		interval:  time.Second,
		log:       log.With().Str("component", "exam_service").Logger(),
		users:     make(map[string]*userExam),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.publisher != nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.outbox = make(chan outboundEvent, outboxSize)
		s.stopRelay = cancel
		s.relayDone = make(chan struct{})
		go s.relay(ctx)
	}
	return s
}

func (s *ExamService) userFor(userID string) *userExam {
	s.mu.Lock()
	defer s.mu.Unlock()

	ue, ok := s.users[userID]
	if !ok {
		ue = &userExam{
			flow:        exam.NewFlow(s.flowOpts...),
			subscribers: make(map[int]chan ExamEvent),
		}
		s.users[userID] = ue
	}
	return ue
}

// Close stops every running countdown and the event relay.
func (s *ExamService) Close() {
	s.mu.Lock()
	for _, ue := range s.users {
		ue.mu.Lock()
		ue.cancelTimer()
		ue.mu.Unlock()
	}
	s.mu.Unlock()

	s.closeOnce.Do(func() {
		if s.stopRelay != nil {
			s.stopRelay()
			<-s.relayDone
		}
	})
}

// ─── Flow actions ──────────────────────────────────────────────────────────

// State returns the user's current flow state.
func (s *ExamService) State(userID string) exam.State {
	ue := s.userFor(userID)
	ue.mu.Lock()
	defer ue.mu.Unlock()
	return ue.flow.State()
}

// PickBranch selects the engineering stream.
func (s *ExamService) PickBranch(ctx context.Context, userID string, subject model.Subject) (*FlowUpdate, error) {
	return s.dispatch(ctx, userID, exam.Event{Kind: exam.EventPickBranch, Subject: subject})
}

// PickTopic selects a topic of the chosen stream.
func (s *ExamService) PickTopic(ctx context.Context, userID, topic string) (*FlowUpdate, error) {
	return s.dispatch(ctx, userID, exam.Event{Kind: exam.EventPickTopic, Topic: topic})
}

// PickTest selects a test and shows its instructions.
func (s *ExamService) PickTest(ctx context.Context, userID, testName string) (*FlowUpdate, error) {
	return s.dispatch(ctx, userID, exam.Event{Kind: exam.EventPickTest, TestName: testName})
}

// Start builds the question set from the current bank and starts the
// countdown.
func (s *ExamService) Start(ctx context.Context, userID string) (*FlowUpdate, error) {
	bank, err := s.loadBank(ctx)
	if err != nil {
		return nil, err
	}
	return s.dispatch(ctx, userID, exam.Event{Kind: exam.EventStart, Bank: bank})
}

// Retake starts the same test again with a fresh attempt.
func (s *ExamService) Retake(ctx context.Context, userID string) (*FlowUpdate, error) {
	bank, err := s.loadBank(ctx)
	if err != nil {
		return nil, err
	}
	return s.dispatch(ctx, userID, exam.Event{Kind: exam.EventRetake, Bank: bank})
}

// Submit scores the running exam and records the result.
func (s *ExamService) Submit(ctx context.Context, userID string) (*FlowUpdate, error) {
	return s.dispatch(ctx, userID, exam.Event{Kind: exam.EventSubmit})
}

// OpenReview shows the answer breakdown of the scored attempt.
func (s *ExamService) OpenReview(ctx context.Context, userID string) (*FlowUpdate, error) {
	return s.dispatch(ctx, userID, exam.Event{Kind: exam.EventOpenReview})
}

// OpenAdmin opens question authoring. Only administrators may enter.
func (s *ExamService) OpenAdmin(ctx context.Context, user *model.User) (*FlowUpdate, error) {
	return s.dispatch(ctx, user.ID, exam.Event{Kind: exam.EventOpenAdmin, IsAdmin: user.IsAdmin()})
}

// BackTarget selects one of the back routes of a view.
type BackTarget string

const (
	BackPrevious BackTarget = "back"
	BackToTests  BackTarget = "tests"
	BackAbandon  BackTarget = "abandon"
)

// Back leaves the current view. An empty target means the previous screen.
func (s *ExamService) Back(ctx context.Context, userID string, target BackTarget) (*FlowUpdate, error) {
	kind := exam.EventBack
	switch target {
	case BackToTests:
		kind = exam.EventBackToTests
	case BackAbandon:
		kind = exam.EventAbandon
	}
	return s.dispatch(ctx, userID, exam.Event{Kind: kind})
}

// SelectAnswer records option for the question at index.
func (s *ExamService) SelectAnswer(userID string, index, option int) (*FlowUpdate, error) {
	return s.withFlow(userID, func(f *exam.Flow) error { return f.SelectAnswer(index, option) })
}

// Navigate jumps to the question at index.
func (s *ExamService) Navigate(userID string, index int) (*FlowUpdate, error) {
	return s.withFlow(userID, func(f *exam.Flow) error { return f.Navigate(index) })
}

// Next moves forward one question.
func (s *ExamService) Next(userID string) (*FlowUpdate, error) {
	return s.withFlow(userID, (*exam.Flow).Next)
}

// Previous moves back one question.
func (s *ExamService) Previous(userID string) (*FlowUpdate, error) {
	return s.withFlow(userID, (*exam.Flow).Previous)
}

// MarkForReview flags the question at index.
func (s *ExamService) MarkForReview(userID string, index int) (*FlowUpdate, error) {
	return s.withFlow(userID, func(f *exam.Flow) error { return f.MarkForReview(index) })
}

// Result returns the scored attempt with any persistence warnings.
func (s *ExamService) Result(userID string) (*ResultView, error) {
	ue := s.userFor(userID)
	ue.mu.Lock()
	defer ue.mu.Unlock()

	res, err := ue.flow.Result()
	if err != nil {
		return nil, err
	}
	rev, err := ue.flow.Review()
	if err != nil {
		return nil, err
	}
	return &ResultView{
		Result:   res,
		Summary:  rev.Summary(),
		Warnings: append([]string(nil), ue.warnings...),
	}, nil
}

// Review returns the answer breakdown narrowed by filter.
func (s *ExamService) Review(userID string, filter exam.Filter) (*ReviewView, error) {
	ue := s.userFor(userID)
	ue.mu.Lock()
	defer ue.mu.Unlock()

	rev, err := ue.flow.Review()
	if err != nil {
		return nil, err
	}
	return &ReviewView{
		Filter:    filter,
		Items:     rev.Filter(filter),
		Summary:   rev.Summary(),
		Correct:   rev.Correct,
		Incorrect: rev.Incorrect,
		Skipped:   rev.Skipped,
	}, nil
}

// Subscribe returns a channel of the user's exam events and a function that
// ends the subscription. Slow subscribers miss events rather than block the
// countdown.
func (s *ExamService) Subscribe(userID string) (<-chan ExamEvent, func()) {
	ue := s.userFor(userID)
	ue.mu.Lock()
	defer ue.mu.Unlock()

	id := ue.nextSubID
	ue.nextSubID++
	ch := make(chan ExamEvent, subscriberBuffer)
	ue.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			ue.mu.Lock()
			defer ue.mu.Unlock()
			delete(ue.subscribers, id)
			close(ch)
		})
	}
}

// ─── Internals ─────────────────────────────────────────────────────────────

func (s *ExamService) loadBank(ctx context.Context) ([]model.Question, error) {
	bank, err := s.bank.GetAllQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load question bank: %v", ErrStorageUnavailable, err)
	}
	return bank, nil
}

func (s *ExamService) withFlow(userID string, fn func(f *exam.Flow) error) (*FlowUpdate, error) {
	ue := s.userFor(userID)
	ue.mu.Lock()
	defer ue.mu.Unlock()

	if err := fn(ue.flow); err != nil {
		return nil, err
	}
	return &FlowUpdate{State: ue.flow.State()}, nil
}

func (s *ExamService) dispatch(ctx context.Context, userID string, ev exam.Event) (*FlowUpdate, error) {
	ue := s.userFor(userID)
	ue.mu.Lock()
	defer ue.mu.Unlock()

	tr, err := ue.flow.Dispatch(ev)
	if err != nil {
		return nil, err
	}

	if tr.LeftActive() || tr.EnteredActive() {
		ue.cancelTimer()
	}
	if tr.EnteredActive() {
		ue.warnings = nil
		s.startTimer(userID, ue)
	}

	update := &FlowUpdate{State: ue.flow.State()}
	if tr.Scored() {
		ue.warnings = s.record(ctx, *tr.Result)
		update.Result = tr.Result
		update.Warnings = ue.warnings
		s.publish(userID, ue, ExamEvent{
			Type:     EventSubmitted,
			Result:   tr.Result,
			Warnings: ue.warnings,
		})
	} else if tr.From != tr.To {
		s.publish(userID, ue, ExamEvent{Type: EventState, TimeRemaining: ue.flow.TimeRemaining()})
	}
	return update, nil
}

// startTimer must be called with ue.mu held.
func (s *ExamService) startTimer(userID string, ue *userExam) {
	ctx, cancel := context.WithCancel(context.Background())
	ue.stopTimer = cancel

	t := s.newTicker(s.interval)
	go exam.Drive(ctx, t, func() bool { return s.onTick(ctx, userID, ue) })
}

func (s *ExamService) onTick(ctx context.Context, userID string, ue *userExam) (done bool) {
	ue.mu.Lock()
	defer ue.mu.Unlock()

	// A replaced timer may still be waiting for the lock.
	if ctx.Err() != nil {
		return true
	}

	tr, fired := ue.flow.Tick()
	if !fired {
		if ue.flow.View() != exam.ViewActive {
			return true
		}
		s.publish(userID, ue, ExamEvent{Type: EventTick, TimeRemaining: ue.flow.TimeRemaining()})
		return false
	}

	s.log.Info().
		Str("user_id", userID).
		Str("test", tr.Result.TestName).
		Int("score", tr.Result.Score).
		Msg("Time up, exam auto-submitted")

	ue.warnings = s.record(ctx, *tr.Result)
	s.publish(userID, ue, ExamEvent{
		Type:          EventSubmitted,
		AutoSubmitted: true,
		Result:        tr.Result,
		Warnings:      ue.warnings,
	})
	ue.cancelTimer()
	return true
}

func (s *ExamService) record(ctx context.Context, res model.ExamResult) []string {
	err := s.recorder.Record(ctx, res)
	if err == nil {
		return nil
	}
	var pe *PersistError
	if errors.As(err, &pe) {
		return []string{pe.Warning()}
	}
	return []string{err.Error()}
}

// publish must be called with ue.mu held. It never blocks: slow
// subscribers miss events and a full outbox drops them.
func (s *ExamService) publish(userID string, ue *userExam, ev ExamEvent) {
	ev.Warnings = append([]string(nil), ev.Warnings...)
	if ev.Result != nil {
		res := *ev.Result
		ev.Result = &res
	}

	for _, ch := range ue.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}

	if s.outbox == nil {
		return
	}
	select {
	case s.outbox <- outboundEvent{userID: userID, event: ev}:
	default:
		s.log.Debug().Str("user_id", userID).Str("event", string(ev.Type)).Msg("Event outbox full, dropping event")
	}
}

// relay forwards outbox events to the publisher until ctx is cancelled. A
// failing publisher is reported once, and again when it recovers.
func (s *ExamService) relay(ctx context.Context) {
	defer close(s.relayDone)

	failing := false
	for {
		select {
		case <-ctx.Done():
			return
		case out := <-s.outbox:
			pctx, cancel := context.WithTimeout(ctx, publishTimeout)
			err := s.publisher.Publish(pctx, out.userID, out.event)
			cancel()

			switch {
			case err != nil && !failing:
				failing = true
				s.log.Warn().Err(err).Str("user_id", out.userID).Str("event", string(out.event.Type)).Msg("Failed to publish exam event")
			case err == nil && failing:
				failing = false
				s.log.Info().Msg("Exam event publishing recovered")
			}
		}
	}
}
