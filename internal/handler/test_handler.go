package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vocastudio/voca-backend/internal/middleware"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/response"
	"github.com/vocastudio/voca-backend/internal/service"
	"github.com/vocastudio/voca-backend/internal/validator"
)

// TestHandler handles test generation, submission, and result queries.
type TestHandler struct {
	testService     *service.TestService
	wordbookService *service.WordbookService
	resultService   *service.ResultService
}

// NewTestHandler creates a new TestHandler.
func NewTestHandler(
	testService *service.TestService,
	wordbookService *service.WordbookService,
	resultService *service.ResultService,
) *TestHandler {
	return &TestHandler{
		testService:     testService,
		wordbookService: wordbookService,
		resultService:   resultService,
	}
}

// GenerateTest godoc
// POST /api/v1/student/tests
// Builds a shuffled test paper from a wordbook.
func (h *TestHandler) GenerateTest(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.GenerateTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if _, err := h.wordbookService.GetVisible(c.Request.Context(), req.WordbookID, claims.AcademyID); err != nil {
		if errors.Is(err, service.ErrWrongAcademy) {
			response.Fail(c, http.StatusForbidden, response.ErrWrongAcademy)
			return
		}
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	questions, err := h.testService.GenerateTest(c.Request.Context(), req.WordbookID, req.Type, req.Count)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	if len(questions) == 0 {
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrWordbookEmpty)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"wordbook_id": req.WordbookID,
		"type":        req.Type,
		"questions":   questions,
	})
}

// SubmitTest godoc
// POST /api/v1/student/tests/submit
// Grades a finished test and returns the verdicts. Persistence happens in
// the background through the result worker.
func (h *TestHandler) SubmitTest(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.SubmitTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	if len(req.Answers) == 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrNoAnswers)
		return
	}

	graded, err := h.testService.SubmitTest(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": graded})
}

// MyResults godoc
// GET /api/v1/student/results
// Lists the student's past test results, newest first.
func (h *TestHandler) MyResults(c *gin.Context) {
	claims := middleware.GetClaims(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	results, pagination, err := h.resultService.History(c.Request.Context(), claims.UserID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"results": results}, pagination)
}

// MyStats godoc
// GET /api/v1/student/results/stats
// Aggregates the student's test history for the dashboard.
func (h *TestHandler) MyStats(c *gin.Context) {
	claims := middleware.GetClaims(c)

	stats, err := h.resultService.Stats(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// WordbookResults godoc
// GET /api/v1/staff/wordbooks/:id/results
// Lists all student results for one wordbook, for class review.
func (h *TestHandler) WordbookResults(c *gin.Context) {
	claims := middleware.GetClaims(c)

	wordbookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.wordbookService.GetVisible(c.Request.Context(), wordbookID, claims.AcademyID); err != nil {
		failOwnership(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	results, pagination, err := h.resultService.WordbookResults(c.Request.Context(), wordbookID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"results": results}, pagination)
}
