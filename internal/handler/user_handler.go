package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vocastudio/voca-backend/internal/middleware"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/repository"
	"github.com/vocastudio/voca-backend/internal/response"
	"github.com/vocastudio/voca-backend/internal/service"
	"github.com/vocastudio/voca-backend/internal/validator"
)

// UserHandler handles account management inside an academy. All routes sit
// behind the academy_admin role gate; the tenant comes from the JWT, never
// from the request.
type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *service.UserService, authService *service.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

// ListUsers godoc
// GET /api/v1/staff/users?role=student&page=1
// Lists the academy's accounts with pagination and optional role filter.
func (h *UserHandler) ListUsers(c *gin.Context) {
	claims := middleware.GetClaims(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	var role *model.Role
	if raw := c.Query("role"); raw != "" {
		r := model.Role(raw)
		role = &r
	}

	users, pagination, err := h.userService.List(c.Request.Context(), claims.AcademyID, role, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"users": users}, pagination)
}

// CreateUser godoc
// POST /api/v1/staff/users
// Creates an account in the caller's academy.
func (h *UserHandler) CreateUser(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), claims.AcademyID, &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// UpdateUser godoc
// PUT /api/v1/staff/users/:id
// Updates an account of the caller's academy.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateUserRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), claims.AcademyID, id, &req)
	if err != nil {
		if errors.Is(err, service.ErrWrongAcademy) {
			response.Fail(c, http.StatusForbidden, response.ErrWrongAcademy)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// DeleteUser godoc
// DELETE /api/v1/staff/users/:id
// Removes an account of the caller's academy.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), claims.AcademyID, id); err != nil {
		if errors.Is(err, service.ErrWrongAcademy) {
			response.Fail(c, http.StatusForbidden, response.ErrWrongAcademy)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "user deleted successfully"})
}

// ResetStudentSession godoc
// POST /api/v1/staff/users/:id/reset-session
// Clears a student's single-device session so they can log in again.
func (h *UserHandler) ResetStudentSession(c *gin.Context) {
	claims := middleware.GetClaims(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	// Tenant check before touching the session.
	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if user.AcademyID == nil || *user.AcademyID != claims.AcademyID {
		response.Fail(c, http.StatusForbidden, response.ErrWrongAcademy)
		return
	}

	if err := h.authService.ResetStudentSession(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "session reset successfully"})
}
