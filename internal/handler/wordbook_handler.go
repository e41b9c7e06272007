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

// WordbookHandler handles wordbook management and the Excel import.
type WordbookHandler struct {
	wordbookService *service.WordbookService
	wordService     *service.WordService
	testService     *service.TestService
	maxImportBytes  int64
}

// NewWordbookHandler creates a new WordbookHandler.
func NewWordbookHandler(
	wordbookService *service.WordbookService,
	wordService *service.WordService,
	testService *service.TestService,
	maxImportBytes int64,
) *WordbookHandler {
	return &WordbookHandler{
		wordbookService: wordbookService,
		wordService:     wordService,
		testService:     testService,
		maxImportBytes:  maxImportBytes,
	}
}

// ListWordbooks godoc
// GET /api/v1/wordbooks
// Lists wordbooks visible to the caller's academy, shared ones included.
func (h *WordbookHandler) ListWordbooks(c *gin.Context) {
	claims := middleware.GetClaims(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	wordbooks, pagination, err := h.wordbookService.List(c.Request.Context(), claims.AcademyID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"wordbooks": wordbooks}, pagination)
}

// GetWordbook godoc
// GET /api/v1/wordbooks/:id
// Returns one wordbook with its words.
func (h *WordbookHandler) GetWordbook(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	wordbook, err := h.wordbookService.GetVisible(c.Request.Context(), id, claims.AcademyID)
	if err != nil {
		if errors.Is(err, service.ErrWrongAcademy) {
			response.Fail(c, http.StatusForbidden, response.ErrWrongAcademy)
			return
		}
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	words, err := h.wordService.ListByWordbook(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"wordbook": wordbook,
		"words":    words,
	})
}

// CreateWordbook godoc
// POST /api/v1/staff/wordbooks
// Creates a wordbook owned by the caller's academy. Super admins may mark
// it shared, making it visible to every academy.
func (h *WordbookHandler) CreateWordbook(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateWordbookRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	wordbook := &model.Wordbook{
		AuthorID:    claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
	}
	if !(req.Shared && claims.Role == model.RoleSuperAdmin) {
		academyID := claims.AcademyID
		wordbook.AcademyID = &academyID
	}

	if err := h.wordbookService.Create(c.Request.Context(), wordbook); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"wordbook": wordbook})
}

// UpdateWordbook godoc
// PUT /api/v1/staff/wordbooks/:id
// Updates a wordbook. Teachers may only edit their own.
func (h *WordbookHandler) UpdateWordbook(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateWordbookRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	wordbook := &model.Wordbook{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
	}

	if err := h.wordbookService.Update(c.Request.Context(), authorGate(claims), claims.AcademyID, wordbook); err != nil {
		failOwnership(c, err)
		return
	}

	updated, _ := h.wordbookService.GetVisible(c.Request.Context(), id, claims.AcademyID)
	response.Success(c, http.StatusOK, gin.H{"wordbook": updated})
}

// DeleteWordbook godoc
// DELETE /api/v1/staff/wordbooks/:id
// Deletes a wordbook and its words.
func (h *WordbookHandler) DeleteWordbook(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.wordbookService.Delete(c.Request.Context(), id, authorGate(claims), claims.AcademyID); err != nil {
		failOwnership(c, err)
		return
	}

	h.testService.InvalidateWordbookCache(c.Request.Context(), id)
	response.Success(c, http.StatusOK, gin.H{"message": "wordbook deleted successfully"})
}

// ImportWords godoc
// POST /api/v1/staff/wordbooks/:id/import
// Bulk-imports words from an uploaded .xlsx file.
func (h *WordbookHandler) ImportWords(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.wordbookService.GetVisible(c.Request.Context(), id, claims.AcademyID); err != nil {
		failOwnership(c, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	if header.Size > h.maxImportBytes {
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		return
	}

	summary, err := h.wordService.ImportExcel(c.Request.Context(), id, file)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrImportFailed)
		return
	}

	if err := h.wordbookService.SyncWordCount(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	h.testService.InvalidateWordbookCache(c.Request.Context(), id)

	response.Success(c, http.StatusOK, gin.H{"import": summary})
}

// authorGate returns the author ID the ownership check should enforce.
// Admin roles bypass the author check, teachers are held to their own books.
func authorGate(claims *service.Claims) int {
	if claims.Role == model.RoleTeacher {
		return claims.UserID
	}
	return 0
}

func failOwnership(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWrongAcademy):
		response.Fail(c, http.StatusForbidden, response.ErrWrongAcademy)
	case errors.Is(err, service.ErrNotWordbookOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotWordbookOwner)
	default:
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	}
}
