package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/response"
	"github.com/vocastudio/voca-backend/internal/service"
	"github.com/vocastudio/voca-backend/internal/validator"
)

// AcademyHandler handles tenant management, super admin only.
type AcademyHandler struct {
	academyService *service.AcademyService
}

// NewAcademyHandler creates a new AcademyHandler.
func NewAcademyHandler(academyService *service.AcademyService) *AcademyHandler {
	return &AcademyHandler{academyService: academyService}
}

// ListAcademies godoc
// GET /api/v1/admin/academies
// Lists academies with pagination.
func (h *AcademyHandler) ListAcademies(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	academies, pagination, err := h.academyService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"academies": academies}, pagination)
}

// GetAcademy godoc
// GET /api/v1/admin/academies/:id
// Returns one academy.
func (h *AcademyHandler) GetAcademy(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	academy, err := h.academyService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"academy": academy})
}

// CreateAcademy godoc
// POST /api/v1/admin/academies
// Registers a new academy.
func (h *AcademyHandler) CreateAcademy(c *gin.Context) {
	var req model.CreateAcademyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	academy := &model.Academy{
		Name:     req.Name,
		Code:     req.Code,
		Plan:     req.Plan,
		IsActive: true,
	}

	if err := h.academyService.Create(c.Request.Context(), academy); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"academy": academy})
}

// UpdateAcademy godoc
// PUT /api/v1/admin/academies/:id
// Updates an academy's name, plan, or active flag.
func (h *AcademyHandler) UpdateAcademy(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateAcademyRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	academy, err := h.academyService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	if req.Name != "" {
		academy.Name = req.Name
	}
	if req.Plan != "" {
		academy.Plan = req.Plan
	}
	if req.IsActive != nil {
		academy.IsActive = *req.IsActive
	}

	if err := h.academyService.Update(c.Request.Context(), academy); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	updated, _ := h.academyService.GetByID(c.Request.Context(), id)
	response.Success(c, http.StatusOK, gin.H{"academy": updated})
}

// DeleteAcademy godoc
// DELETE /api/v1/admin/academies/:id
// Removes an academy. Fails while users or wordbooks still reference it.
func (h *AcademyHandler) DeleteAcademy(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.academyService.Delete(c.Request.Context(), id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "academy deleted successfully"})
}

// BillingSummary godoc
// GET /api/v1/admin/academies/billing
// Aggregates per-academy usage counts for invoicing.
func (h *AcademyHandler) BillingSummary(c *gin.Context) {
	summaries, err := h.academyService.BillingSummary(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"academies": summaries})
}
