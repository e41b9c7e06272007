package model

import "time"

// Announcement is a message from academy staff to their students,
// persisted and fanned out live over the notification stream.
type Announcement struct {
	ID        int64     `json:"id"`
	AcademyID int       `json:"academy_id"`
	AuthorID  int       `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAnnouncementRequest is the payload for posting an announcement.
type CreateAnnouncementRequest struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
	Body  string `json:"body" binding:"required,min=1,max=5000"`
}
