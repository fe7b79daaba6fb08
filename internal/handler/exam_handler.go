package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/gatemock-backend/internal/exam"
	"github.com/stemsi/gatemock-backend/internal/middleware"
	"github.com/stemsi/gatemock-backend/internal/model"
	"github.com/stemsi/gatemock-backend/internal/response"
	"github.com/stemsi/gatemock-backend/internal/service"
	"github.com/stemsi/gatemock-backend/internal/validator"
)

// ExamHandler handles the mock exam flow endpoints.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

func userID(c *gin.Context) string {
	return middleware.GetCurrentUser(c).ID
}

func respondUpdate(c *gin.Context, update *service.FlowUpdate, err error) {
	if err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, update)
}

// GetState godoc
// GET /api/v1/exam/state
// Returns the current screen, the selection and the running session.
func (h *ExamHandler) GetState(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"state": h.examService.State(userID(c))})
}

// ListBranches godoc
// GET /api/v1/exam/branches
func (h *ExamHandler) ListBranches(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"branches": exam.Branches()})
}

// ListTopics godoc
// GET /api/v1/exam/topics?subject=
// Lists topics of the given subject, or of the selected branch.
func (h *ExamHandler) ListTopics(c *gin.Context) {
	subject := model.Subject(strings.TrimSpace(c.Query("subject")))
	if subject == "" {
		subject = h.examService.State(userID(c)).Config.Subject
	}
	if !subject.Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidSelection)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subject": subject, "topics": exam.Topics(subject)})
}

// ListTests godoc
// GET /api/v1/exam/tests
func (h *ExamHandler) ListTests(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"tests": exam.Tests()})
}

// PickBranch godoc
// POST /api/v1/exam/branch
func (h *ExamHandler) PickBranch(c *gin.Context) {
	var req model.PickBranchRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	update, err := h.examService.PickBranch(c.Request.Context(), userID(c), model.Subject(req.Subject))
	respondUpdate(c, update, err)
}

// PickTopic godoc
// POST /api/v1/exam/topic
func (h *ExamHandler) PickTopic(c *gin.Context) {
	var req model.PickTopicRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	update, err := h.examService.PickTopic(c.Request.Context(), userID(c), req.Topic)
	respondUpdate(c, update, err)
}

// PickTest godoc
// POST /api/v1/exam/test
func (h *ExamHandler) PickTest(c *gin.Context) {
	var req model.PickTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	update, err := h.examService.PickTest(c.Request.Context(), userID(c), req.TestName)
	respondUpdate(c, update, err)
}

// Start godoc
// POST /api/v1/exam/start
// Builds the question set and starts the countdown.
func (h *ExamHandler) Start(c *gin.Context) {
	update, err := h.examService.Start(c.Request.Context(), userID(c))
	respondUpdate(c, update, err)
}

// SelectAnswer godoc
// POST /api/v1/exam/answer
func (h *ExamHandler) SelectAnswer(c *gin.Context) {
	var req model.AnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	update, err := h.examService.SelectAnswer(userID(c), *req.Index, *req.Option)
	respondUpdate(c, update, err)
}

// Navigate godoc
// POST /api/v1/exam/navigate
// Moves to an index, or one step with direction next/previous.
func (h *ExamHandler) Navigate(c *gin.Context) {
	var req model.NavigateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var (
		update *service.FlowUpdate
		err    error
	)
	switch req.Direction {
	case "next":
		update, err = h.examService.Next(userID(c))
	case "previous":
		update, err = h.examService.Previous(userID(c))
	default:
		update, err = h.examService.Navigate(userID(c), *req.Index)
	}
	respondUpdate(c, update, err)
}

// MarkForReview godoc
// POST /api/v1/exam/mark
func (h *ExamHandler) MarkForReview(c *gin.Context) {
	var req model.MarkRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	update, err := h.examService.MarkForReview(userID(c), *req.Index)
	respondUpdate(c, update, err)
}

// Submit godoc
// POST /api/v1/exam/submit
// Scores the exam. Persistence problems are reported as warnings.
func (h *ExamHandler) Submit(c *gin.Context) {
	update, err := h.examService.Submit(c.Request.Context(), userID(c))
	respondUpdate(c, update, err)
}

// GetResult godoc
// GET /api/v1/exam/result
func (h *ExamHandler) GetResult(c *gin.Context) {
	view, err := h.examService.Result(userID(c))
	if err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// GetReview godoc
// GET /api/v1/exam/review?filter=all|correct|incorrect|skipped
// Opens the review screen on first call.
func (h *ExamHandler) GetReview(c *gin.Context) {
	filter, err := exam.ParseFilter(c.Query("filter"))
	if err != nil {
		failWithError(c, err)
		return
	}

	uid := userID(c)
	if h.examService.State(uid).View == exam.ViewResult {
		if _, err := h.examService.OpenReview(c.Request.Context(), uid); err != nil {
			failWithError(c, err)
			return
		}
	}

	view, err := h.examService.Review(uid, filter)
	if err != nil {
		failWithError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// Retake godoc
// POST /api/v1/exam/retake
func (h *ExamHandler) Retake(c *gin.Context) {
	update, err := h.examService.Retake(c.Request.Context(), userID(c))
	respondUpdate(c, update, err)
}

// Back godoc
// POST /api/v1/exam/back
// Target "back" (default), "tests" or "abandon".
func (h *ExamHandler) Back(c *gin.Context) {
	var req model.BackRequest
	if c.Request.ContentLength != 0 {
		if fields := validator.Bind(c, &req); fields != nil {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
			return
		}
	}
	update, err := h.examService.Back(c.Request.Context(), userID(c), service.BackTarget(req.Target))
	respondUpdate(c, update, err)
}

// OpenAdmin godoc
// POST /api/v1/exam/admin
func (h *ExamHandler) OpenAdmin(c *gin.Context) {
	update, err := h.examService.OpenAdmin(c.Request.Context(), middleware.GetCurrentUser(c))
	respondUpdate(c, update, err)
}
