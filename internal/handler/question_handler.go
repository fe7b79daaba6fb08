package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/gatemock-backend/internal/model"
	"github.com/stemsi/gatemock-backend/internal/response"
	"github.com/stemsi/gatemock-backend/internal/service"
	"github.com/stemsi/gatemock-backend/internal/validator"
)

// QuestionHandler handles question bank endpoints.
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// ListQuestions godoc
// GET /api/v1/questions
// Lists the whole question bank.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.List(c.Request.Context())
	if err != nil {
		failWithError(c, err)
		return
	}

	if questions == nil {
		questions = []model.Question{}
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// AddQuestion godoc
// POST /api/v1/questions
// Appends a question to the bank.
func (h *QuestionHandler) AddQuestion(c *gin.Context) {
	var req model.AddQuestionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	question, err := h.questionService.Add(c.Request.Context(), req)
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"question": question})
}
