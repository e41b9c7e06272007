package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vocastudio/voca-backend/internal/middleware"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/response"
	"github.com/vocastudio/voca-backend/internal/service"
	"github.com/vocastudio/voca-backend/internal/validator"
)

// GameHandler handles mini-game score reporting and leaderboards.
type GameHandler struct {
	gameService     *service.GameService
	wordbookService *service.WordbookService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(gameService *service.GameService, wordbookService *service.WordbookService) *GameHandler {
	return &GameHandler{gameService: gameService, wordbookService: wordbookService}
}

// SubmitScore godoc
// POST /api/v1/student/games/scores
// Records a finished game run and bumps the wordbook leaderboard.
func (h *GameHandler) SubmitScore(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.SubmitGameScoreRequest
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

	if err := h.gameService.SubmitScore(c.Request.Context(), claims.UserID, &req); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "score recorded"})
}

// Leaderboard godoc
// GET /api/v1/student/games/wordbooks/:id/leaderboard
// Returns the top players for a wordbook.
func (h *GameHandler) Leaderboard(c *gin.Context) {
	claims := middleware.GetClaims(c)

	wordbookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if _, err := h.wordbookService.GetVisible(c.Request.Context(), wordbookID, claims.AcademyID); err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	entries, err := h.gameService.Leaderboard(c.Request.Context(), wordbookID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"leaderboard": entries})
}
