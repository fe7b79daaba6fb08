package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/gatemock-backend/internal/config"
	"github.com/stemsi/gatemock-backend/internal/exam"
	"github.com/stemsi/gatemock-backend/internal/handler"
	"github.com/stemsi/gatemock-backend/internal/model"
	"github.com/stemsi/gatemock-backend/internal/repository"
	"github.com/stemsi/gatemock-backend/internal/router"
	"github.com/stemsi/gatemock-backend/internal/service"
	"github.com/stemsi/gatemock-backend/internal/validator"
)

// idleTicker never fires, so countdowns stay at their planned duration.
type idleTicker struct{}

func (idleTicker) C() <-chan time.Time { return nil }
func (idleTicker) Stop()               {}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

type app struct {
	t      *testing.T
	engine *gin.Engine
}

func newApp(t *testing.T) *app {
	t.Helper()
	validator.Setup()

	log := zerolog.New(io.Discard)
	kv := repository.NewMemoryKV()
	questions := repository.NewQuestionRepository(kv, log)
	results := repository.NewResultRepository(kv, log)
	stats := repository.NewStatsRepository(kv, log)
	users := repository.NewCurrentUserRepository(kv, log)
	pending := repository.NewPendingWriteRepository(kv, log)

	recorder := service.NewRecorderService(results, stats, nil, log)
	examService := service.NewExamService(questions, recorder, log,
		service.WithTickerFactory(func(time.Duration) exam.Ticker { return idleTicker{} }))
	t.Cleanup(examService.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	handlers := &router.Handlers{
		Exam:        handler.NewExamHandler(examService),
		Question:    handler.NewQuestionHandler(service.NewQuestionService(questions, log)),
		Dashboard:   handler.NewDashboardHandler(service.NewDashboardService(questions, results, stats)),
		CurrentUser: handler.NewCurrentUserHandler(users),
		System:      handler.NewSystemHandler(pending, config.StorageMemory, log),
		WS:          handler.NewWSHandler(examService, log, nil),
	}
	cfg := &config.Config{GinMode: gin.TestMode, AdminRateLimitPerMinute: 30}

	return &app{t: t, engine: router.SetupRouter(ctx, users, handlers, cfg, log)}
}

func (a *app) do(method, path string, body interface{}) (int, envelope) {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		a.t.Fatalf("%s %s: decode %q: %v", method, path, w.Body.String(), err)
	}
	return w.Code, env
}

// must performs a request expected to succeed and decodes its data into dst.
func (a *app) must(method, path string, body, dst interface{}) {
	a.t.Helper()
	code, env := a.do(method, path, body)
	if code >= 300 {
		a.t.Fatalf("%s %s = %d %+v", method, path, code, env.Error)
	}
	if dst != nil {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			a.t.Fatalf("%s %s: data: %v", method, path, err)
		}
	}
}

func (a *app) expectError(method, path string, body interface{}, status int, code string) envelope {
	a.t.Helper()
	got, env := a.do(method, path, body)
	if got != status || env.Error == nil || env.Error.Code != code {
		a.t.Fatalf("%s %s = %d %+v, want %d %s", method, path, got, env.Error, status, code)
	}
	return env
}

func (a *app) signIn(u model.SetCurrentUserRequest) {
	a.t.Helper()
	a.must(http.MethodPut, "/api/v1/current-user", u, nil)
}

var (
	student = model.SetCurrentUserRequest{ID: "student-001", Name: "Rahul Student", Role: model.RoleUser}
	admin   = model.SetCurrentUserRequest{ID: "admin-001", Name: "MCOET Admin", Role: model.RoleAdmin}
)

type flowData struct {
	State struct {
		View    string `json:"view"`
		Session *struct {
			Questions     []json.RawMessage `json:"questions"`
			TimeRemaining int               `json:"time_remaining"`
		} `json:"session"`
	} `json:"state"`
	Result *model.ExamResult `json:"result"`
}

func TestRouter_SignedOut(t *testing.T) {
	a := newApp(t)

	a.expectError(http.MethodGet, "/api/v1/exam/state", nil, http.StatusUnauthorized, "SIGN_IN_REQUIRED")
	a.expectError(http.MethodGet, "/api/v1/dashboard", nil, http.StatusUnauthorized, "SIGN_IN_REQUIRED")

	var data struct {
		User *model.User `json:"user"`
	}
	a.must(http.MethodGet, "/api/v1/current-user", nil, &data)
	if data.User != nil {
		t.Errorf("user = %+v, want nil", data.User)
	}
}

func TestRouter_ExamFlow(t *testing.T) {
	a := newApp(t)
	a.signIn(student)

	var flow flowData
	a.must(http.MethodPost, "/api/v1/exam/branch", gin.H{"subject": string(model.SubjectCSE)}, &flow)
	if flow.State.View != "subject_selection" {
		t.Fatalf("view = %s", flow.State.View)
	}
	a.must(http.MethodPost, "/api/v1/exam/topic", gin.H{"topic": "Algorithms"}, nil)
	a.must(http.MethodPost, "/api/v1/exam/test", gin.H{"test_name": "Mock Test 1"}, nil)

	a.must(http.MethodPost, "/api/v1/exam/start", nil, &flow)
	if flow.State.View != "active" || flow.State.Session == nil {
		t.Fatalf("state = %+v", flow.State)
	}
	if n := len(flow.State.Session.Questions); n != 10 {
		t.Fatalf("questions = %d, want 10", n)
	}
	if flow.State.Session.TimeRemaining != 1200 {
		t.Errorf("time remaining = %d", flow.State.Session.TimeRemaining)
	}

	cfg := exam.Config{Subject: model.SubjectCSE, Topic: "Algorithms", TestName: "Mock Test 1"}
	key := exam.Resolve(cfg, repository.InitialQuestions())[0].CorrectAnswer
	a.must(http.MethodPost, "/api/v1/exam/answer", gin.H{"index": 0, "option": key}, nil)
	a.expectError(http.MethodPost, "/api/v1/exam/answer", gin.H{"index": 10, "option": 0},
		http.StatusBadRequest, "INDEX_OUT_OF_RANGE")
	a.must(http.MethodPost, "/api/v1/exam/navigate", gin.H{"direction": "next"}, nil)

	a.must(http.MethodPost, "/api/v1/exam/submit", nil, &flow)
	if flow.State.View != "result" || flow.Result == nil {
		t.Fatalf("after submit: %+v", flow)
	}
	if flow.Result.Subject != model.SubjectCSE || flow.Result.TestName != "Mock Test 1 (Algorithms)" {
		t.Errorf("result = %+v", flow.Result)
	}
	if flow.Result.Score != 10 || flow.Result.CorrectAnswers != 1 || flow.Result.TotalQuestions != 10 {
		t.Errorf("score = %d, correct = %d/%d, want 10, 1/10",
			flow.Result.Score, flow.Result.CorrectAnswers, flow.Result.TotalQuestions)
	}

	var result service.ResultView
	a.must(http.MethodGet, "/api/v1/exam/result", nil, &result)
	if result.Result.ID != flow.Result.ID {
		t.Errorf("result id = %s, want %s", result.Result.ID, flow.Result.ID)
	}

	a.expectError(http.MethodGet, "/api/v1/exam/review?filter=wrongish", nil, http.StatusBadRequest, "UNKNOWN_FILTER")

	var review struct {
		Items []json.RawMessage `json:"items"`
	}
	a.must(http.MethodGet, "/api/v1/exam/review?filter=skipped", nil, &review)
	if len(review.Items) != 9 {
		t.Errorf("skipped items = %d, want 9", len(review.Items))
	}

	var history struct {
		Results []model.ExamResult `json:"results"`
	}
	a.must(http.MethodGet, "/api/v1/results", nil, &history)
	if len(history.Results) != 1 || history.Results[0].ID != flow.Result.ID {
		t.Errorf("results = %+v", history.Results)
	}
}

func TestRouter_InvalidTransition(t *testing.T) {
	a := newApp(t)
	a.signIn(student)

	a.expectError(http.MethodPost, "/api/v1/exam/start", nil, http.StatusConflict, "INVALID_TRANSITION")
	a.expectError(http.MethodGet, "/api/v1/exam/result", nil, http.StatusNotFound, "NO_RESULT")
}

func TestRouter_Questions(t *testing.T) {
	a := newApp(t)
	valid := gin.H{
		"text":           "Which gate is functionally complete?",
		"options":        []string{"AND", "OR", "NAND", "XOR"},
		"correct_answer": 2,
		"explanation":    "NAND alone can build every Boolean function.",
		"subject":        string(model.SubjectENTC),
		"difficulty":     "Easy",
	}

	a.signIn(student)
	a.expectError(http.MethodGet, "/api/v1/questions", nil, http.StatusForbidden, "ADMIN_ACCESS_ONLY")

	a.signIn(admin)
	code, env := a.do(http.MethodPost, "/api/v1/questions", valid)
	if code != http.StatusCreated {
		t.Fatalf("add = %d %+v", code, env.Error)
	}

	invalid := gin.H{"text": "", "options": []string{"a"}, "subject": "Astrology", "difficulty": "Easy"}
	env = a.expectError(http.MethodPost, "/api/v1/questions", invalid, http.StatusBadRequest, "VALIDATION_ERROR")
	if env.Error.Fields["subject"] == "" || env.Error.Fields["options"] == "" {
		t.Errorf("fields = %v", env.Error.Fields)
	}

	var bank struct {
		Questions []model.Question `json:"questions"`
	}
	a.must(http.MethodGet, "/api/v1/questions", nil, &bank)
	if n := len(bank.Questions); n != len(repository.InitialQuestions())+1 {
		t.Errorf("bank size = %d", n)
	}
	if last := bank.Questions[len(bank.Questions)-1]; last.Topic != service.DefaultTopic {
		t.Errorf("topic = %q, want %q", last.Topic, service.DefaultTopic)
	}
}

func TestRouter_Health(t *testing.T) {
	a := newApp(t)

	var data struct {
		Status        string `json:"status"`
		PendingWrites int    `json:"pending_writes"`
	}
	a.must(http.MethodGet, "/health", nil, &data)
	if data.Status != "ok" {
		t.Errorf("status = %q", data.Status)
	}
}
