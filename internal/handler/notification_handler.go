package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vocastudio/voca-backend/internal/middleware"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/response"
	"github.com/vocastudio/voca-backend/internal/service"
	"github.com/vocastudio/voca-backend/internal/validator"
)

// NotificationHandler handles academy announcements.
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// PostAnnouncement godoc
// POST /api/v1/staff/announcements
// Stores an announcement and fans it out to connected students.
func (h *NotificationHandler) PostAnnouncement(c *gin.Context) {
	claims := middleware.GetClaims(c)

	var req model.CreateAnnouncementRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	announcement, err := h.notificationService.Announce(c.Request.Context(), claims.AcademyID, claims.UserID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"announcement": announcement})
}

// RecentAnnouncements godoc
// GET /api/v1/announcements
// Returns the latest announcements of the caller's academy.
func (h *NotificationHandler) RecentAnnouncements(c *gin.Context) {
	claims := middleware.GetClaims(c)

	announcements, err := h.notificationService.Recent(c.Request.Context(), claims.AcademyID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"announcements": announcements})
}
