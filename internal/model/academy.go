package model

import "time"

// Academy is a tenant: a private institute that owns users and wordbooks.
type Academy struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Plan      string    `json:"plan"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateAcademyRequest is the payload for registering a new academy.
type CreateAcademyRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
	Code string `json:"code" binding:"required,alphanum,min=3,max=20"`
	Plan string `json:"plan" binding:"omitempty,oneof=free standard premium"`
}

// UpdateAcademyRequest is the payload for updating an academy.
type UpdateAcademyRequest struct {
	Name     string `json:"name" binding:"omitempty,min=2,max=100"`
	Plan     string `json:"plan" binding:"omitempty,oneof=free standard premium"`
	IsActive *bool  `json:"is_active" binding:"omitempty"`
}

// AcademyBilling is the per-academy usage aggregate used for invoicing.
type AcademyBilling struct {
	AcademyID    int    `json:"academy_id"`
	AcademyName  string `json:"academy_name"`
	Plan         string `json:"plan"`
	StudentCount int    `json:"student_count"`
	TeacherCount int    `json:"teacher_count"`
	TestCount    int    `json:"test_count"`
}
