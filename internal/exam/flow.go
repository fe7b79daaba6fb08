package exam

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stemsi/gatemock-backend/internal/model"
)

// View is a screen of the mock-test flow.
type View int

const (
	ViewBranchSelection View = iota
	ViewSubjectSelection
	ViewTestList
	ViewInstructions
	ViewActive
	ViewResult
	ViewReview
	ViewAdminAddQuestion
)

var viewNames = [...]string{
	ViewBranchSelection:  "branch_selection",
	ViewSubjectSelection: "subject_selection",
	ViewTestList:         "test_list",
	ViewInstructions:     "instructions",
	ViewActive:           "active",
	ViewResult:           "result",
	ViewReview:           "review",
	ViewAdminAddQuestion: "admin_add_question",
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return fmt.Sprintf("view(%d)", int(v))
	}
	return viewNames[v]
}

// MarshalText encodes the view by name.
func (v View) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// EventKind names a user action (or the timer) driving the flow.
type EventKind string

const (
	EventPickBranch  EventKind = "pick_branch"
	EventPickTopic   EventKind = "pick_topic"
	EventPickTest    EventKind = "pick_test"
	EventStart       EventKind = "start"
	EventSubmit      EventKind = "submit"
	EventTimeout     EventKind = "timeout"
	EventOpenReview  EventKind = "open_review"
	EventRetake      EventKind = "retake"
	EventBackToTests EventKind = "back_to_tests"
	EventBack        EventKind = "back"
	EventOpenAdmin   EventKind = "open_admin"
	EventAbandon     EventKind = "abandon"
)

// Event is one input to Flow.Dispatch. Only the fields relevant to Kind
// are read.
type Event struct {
	Kind     EventKind
	Subject  model.Subject    // PickBranch
	Topic    string           // PickTopic
	TestName string           // PickTest
	Bank     []model.Question // Start, Retake
	IsAdmin  bool             // OpenAdmin
}

// Transition describes a successful Dispatch.
type Transition struct {
	From   View              `json:"from"`
	To     View              `json:"to"`
	Event  EventKind         `json:"event"`
	Result *model.ExamResult `json:"result,omitempty"` // set when the attempt was just scored
}

// Scored reports whether this transition produced a result.
func (t Transition) Scored() bool { return t.Result != nil }

// LeftActive reports whether the exam stopped running.
func (t Transition) LeftActive() bool {
	return t.From == ViewActive && t.To != ViewActive
}

// EnteredActive reports whether a new attempt started.
func (t Transition) EnteredActive() bool { return t.To == ViewActive }

type viewHandler func(f *Flow, ev Event) (View, error)

var viewHandlers = map[View]viewHandler{
	ViewBranchSelection:  (*Flow).onBranchSelection,
	ViewSubjectSelection: (*Flow).onSubjectSelection,
	ViewTestList:         (*Flow).onTestList,
	ViewInstructions:     (*Flow).onInstructions,
	ViewActive:           (*Flow).onActive,
	ViewResult:           (*Flow).onResult,
	ViewReview:           (*Flow).onReview,
	ViewAdminAddQuestion: (*Flow).onAdminAddQuestion,
}

// Flow is the mock-test state machine for one user. It is not safe for
// concurrent use.
type Flow struct {
	view    View
	cfg     Config
	session *Session
	result  *model.ExamResult

	now   func() time.Time
	newID func() string
}

// Option configures a Flow.
type Option func(*Flow)

// WithClock overrides the timestamp source for results.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

// WithIDGenerator overrides the result id source.
func WithIDGenerator(newID func() string) Option {
	return func(f *Flow) { f.newID = newID }
}

// NewFlow returns a flow positioned at branch selection.
func NewFlow(opts ...Option) *Flow {
	f := &Flow{
		view:  ViewBranchSelection,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// View is the current screen.
func (f *Flow) View() View { return f.view }

// Config is the selection made so far.
func (f *Flow) Config() Config { return f.cfg }

// Dispatch applies ev to the current view. On error the flow is unchanged.
func (f *Flow) Dispatch(ev Event) (Transition, error) {
	h, ok := viewHandlers[f.view]
	if !ok {
		return Transition{}, fmt.Errorf("%w: unknown view %s", ErrInvalidTransition, f.view)
	}

	from := f.view
	to, err := h(f, ev)
	if err != nil {
		return Transition{}, err
	}
	f.view = to

	tr := Transition{From: from, To: to, Event: ev.Kind}
	if (ev.Kind == EventSubmit || ev.Kind == EventTimeout) && f.result != nil {
		res := *f.result
		tr.Result = &res
	}
	return tr, nil
}

func invalid(v View, k EventKind) error {
	return fmt.Errorf("%w: %s in %s", ErrInvalidTransition, k, v)
}

func (f *Flow) onBranchSelection(ev Event) (View, error) {
	switch ev.Kind {
	case EventPickBranch:
		if !ev.Subject.Valid() {
			return 0, fmt.Errorf("%w: subject %q", ErrInvalidSelection, ev.Subject)
		}
		f.cfg = Config{Subject: ev.Subject}
		return ViewSubjectSelection, nil
	case EventOpenAdmin:
		if !ev.IsAdmin {
			return 0, ErrAdminOnly
		}
		return ViewAdminAddQuestion, nil
	}
	return 0, invalid(f.view, ev.Kind)
}

func (f *Flow) onSubjectSelection(ev Event) (View, error) {
	switch ev.Kind {
	case EventPickTopic:
		topic := strings.TrimSpace(ev.Topic)
		if topic == "" {
			return 0, fmt.Errorf("%w: empty topic", ErrInvalidSelection)
		}
		f.cfg.Topic = topic
		f.cfg.TestName = ""
		return ViewTestList, nil
	case EventBack:
		return ViewBranchSelection, nil
	}
	return 0, invalid(f.view, ev.Kind)
}

func (f *Flow) onTestList(ev Event) (View, error) {
	switch ev.Kind {
	case EventPickTest:
		name := strings.TrimSpace(ev.TestName)
		if name == "" {
			return 0, fmt.Errorf("%w: empty test name", ErrInvalidSelection)
		}
		f.cfg.TestName = name
		return ViewInstructions, nil
	case EventBack:
		return ViewSubjectSelection, nil
	}
	return 0, invalid(f.view, ev.Kind)
}

func (f *Flow) onInstructions(ev Event) (View, error) {
	switch ev.Kind {
	case EventStart:
		f.begin(ev.Bank)
		return ViewActive, nil
	case EventBack:
		return ViewTestList, nil
	}
	return 0, invalid(f.view, ev.Kind)
}

func (f *Flow) onActive(ev Event) (View, error) {
	switch ev.Kind {
	case EventSubmit:
		if err := f.finish(); err != nil {
			return 0, err
		}
		return ViewResult, nil
	case EventTimeout:
		if f.session.TimeRemaining() > 0 {
			return 0, invalid(f.view, ev.Kind)
		}
		if err := f.finish(); err != nil {
			return 0, err
		}
		return ViewResult, nil
	case EventAbandon:
		f.discard()
		return ViewTestList, nil
	}
	return 0, invalid(f.view, ev.Kind)
}

func (f *Flow) onResult(ev Event) (View, error) {
	switch ev.Kind {
	case EventOpenReview:
		return ViewReview, nil
	case EventRetake:
		f.begin(ev.Bank)
		return ViewActive, nil
	case EventBackToTests:
		f.discard()
		return ViewTestList, nil
	}
	return 0, invalid(f.view, ev.Kind)
}

func (f *Flow) onReview(ev Event) (View, error) {
	switch ev.Kind {
	case EventBack:
		return ViewResult, nil
	case EventRetake:
		f.begin(ev.Bank)
		return ViewActive, nil
	case EventBackToTests:
		f.discard()
		return ViewTestList, nil
	}
	return 0, invalid(f.view, ev.Kind)
}

func (f *Flow) onAdminAddQuestion(ev Event) (View, error) {
	if ev.Kind == EventBack {
		return ViewBranchSelection, nil
	}
	return 0, invalid(f.view, ev.Kind)
}

// begin replaces any previous attempt with a fresh one for the current
// selection.
func (f *Flow) begin(bank []model.Question) {
	f.session = NewSession(f.cfg, Resolve(f.cfg, bank))
	f.result = nil
}

func (f *Flow) finish() error {
	outcome, err := f.session.Submit()
	if err != nil {
		return err
	}
	res := BuildResult(f.session.Config(), outcome, f.newID(), f.now())
	f.result = &res
	return nil
}

func (f *Flow) discard() {
	f.session = nil
	f.result = nil
}

// Tick advances the countdown of a running exam. When the countdown reaches
// zero the attempt is submitted and the timeout transition is returned with
// ok set. Outside the active view Tick does nothing.
func (f *Flow) Tick() (tr Transition, ok bool) {
	if f.view != ViewActive || f.session == nil {
		return Transition{}, false
	}
	if !f.session.Tick() {
		return Transition{}, false
	}
	tr, err := f.Dispatch(Event{Kind: EventTimeout})
	if err != nil {
		return Transition{}, false
	}
	return tr, true
}

func (f *Flow) activeSession() (*Session, error) {
	if f.view != ViewActive || f.session == nil {
		return nil, ErrNotActive
	}
	return f.session, nil
}

// SelectAnswer records an option on the running exam.
func (f *Flow) SelectAnswer(index, option int) error {
	s, err := f.activeSession()
	if err != nil {
		return err
	}
	return s.SelectAnswer(index, option)
}

// Navigate moves the running exam to index.
func (f *Flow) Navigate(index int) error {
	s, err := f.activeSession()
	if err != nil {
		return err
	}
	return s.Navigate(index)
}

// Next moves the running exam forward one question.
func (f *Flow) Next() error {
	s, err := f.activeSession()
	if err != nil {
		return err
	}
	return s.Next()
}

// Previous moves the running exam back one question.
func (f *Flow) Previous() error {
	s, err := f.activeSession()
	if err != nil {
		return err
	}
	return s.Previous()
}

// MarkForReview flags a question of the running exam.
func (f *Flow) MarkForReview(index int) error {
	s, err := f.activeSession()
	if err != nil {
		return err
	}
	return s.MarkForReview(index)
}

// TimeRemaining is the countdown of the running exam, 0 otherwise.
func (f *Flow) TimeRemaining() int {
	if f.view != ViewActive || f.session == nil {
		return 0
	}
	return f.session.TimeRemaining()
}

// Result is the record of the attempt shown on the result or review screen.
func (f *Flow) Result() (model.ExamResult, error) {
	if (f.view != ViewResult && f.view != ViewReview) || f.result == nil {
		return model.ExamResult{}, ErrNoResult
	}
	return *f.result, nil
}

// Review derives the answer breakdown of the completed attempt.
func (f *Flow) Review() (Review, error) {
	if (f.view != ViewResult && f.view != ViewReview) || f.session == nil {
		return Review{}, ErrNoResult
	}
	return BuildReview(f.session.Questions(), f.session.Answers()), nil
}

// State is the serializable view of the flow.
type State struct {
	View    View              `json:"view"`
	Config  Config            `json:"config"`
	Session *Snapshot         `json:"session,omitempty"`
	Result  *model.ExamResult `json:"result,omitempty"`
}

// State captures the flow for clients. The session is only included while
// the exam runs; the result only once it is scored.
func (f *Flow) State() State {
	st := State{View: f.view, Config: f.cfg}
	if f.view == ViewActive && f.session != nil {
		snap := f.session.Snapshot()
		st.Session = &snap
	}
	if f.result != nil {
		res := *f.result
		st.Result = &res
	}
	return st
}
