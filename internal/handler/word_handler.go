package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vocastudio/voca-backend/internal/middleware"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/response"
	"github.com/vocastudio/voca-backend/internal/service"
	"github.com/vocastudio/voca-backend/internal/validator"
)

// WordHandler handles single-word content management.
type WordHandler struct {
	wordService     *service.WordService
	wordbookService *service.WordbookService
	testService     *service.TestService
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(
	wordService *service.WordService,
	wordbookService *service.WordbookService,
	testService *service.TestService,
) *WordHandler {
	return &WordHandler{
		wordService:     wordService,
		wordbookService: wordbookService,
		testService:     testService,
	}
}

// AddWord godoc
// POST /api/v1/staff/wordbooks/:id/words
// Adds one word to a wordbook.
func (h *WordHandler) AddWord(c *gin.Context) {
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

	var req model.AddWordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	word := &model.Word{
		WordbookID:      wordbookID,
		English:         req.English,
		Korean:          req.Korean,
		ExampleSentence: req.ExampleSentence,
		OrderNum:        req.OrderNum,
	}

	if err := h.wordService.Add(c.Request.Context(), word); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	h.afterWordChange(c, wordbookID)
	response.Success(c, http.StatusCreated, gin.H{"word": word})
}

// UpdateWord godoc
// PUT /api/v1/staff/wordbooks/:id/words/:word_id
// Updates one word of a wordbook.
func (h *WordHandler) UpdateWord(c *gin.Context) {
	claims := middleware.GetClaims(c)

	wordbookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	wordID, err := uuid.Parse(c.Param("word_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.wordbookService.GetVisible(c.Request.Context(), wordbookID, claims.AcademyID); err != nil {
		failOwnership(c, err)
		return
	}

	var req model.UpdateWordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	word := &model.Word{
		ID:         wordID,
		WordbookID: wordbookID,
		English:    req.English,
		Korean:     req.Korean,
	}
	if req.ExampleSentence != nil {
		word.ExampleSentence = *req.ExampleSentence
	}
	if req.OrderNum != nil {
		word.OrderNum = *req.OrderNum
	}

	if err := h.wordService.Update(c.Request.Context(), wordbookID, word); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	h.testService.InvalidateWordbookCache(c.Request.Context(), wordbookID)
	response.Success(c, http.StatusOK, gin.H{"word": word})
}

// DeleteWord godoc
// DELETE /api/v1/staff/wordbooks/:id/words/:word_id
// Removes one word from a wordbook.
func (h *WordHandler) DeleteWord(c *gin.Context) {
	claims := middleware.GetClaims(c)

	wordbookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}
	wordID, err := uuid.Parse(c.Param("word_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.wordbookService.GetVisible(c.Request.Context(), wordbookID, claims.AcademyID); err != nil {
		failOwnership(c, err)
		return
	}

	if err := h.wordService.Delete(c.Request.Context(), wordbookID, wordID); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	h.afterWordChange(c, wordbookID)
	response.Success(c, http.StatusOK, gin.H{"message": "word deleted successfully"})
}

// afterWordChange keeps the denormalized count and the item cache in step
// with the words table.
func (h *WordHandler) afterWordChange(c *gin.Context, wordbookID uuid.UUID) {
	_ = h.wordbookService.SyncWordCount(c.Request.Context(), wordbookID)
	h.testService.InvalidateWordbookCache(c.Request.Context(), wordbookID)
}
