package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/vocastudio/voca-backend/internal/model"
	"github.com/vocastudio/voca-backend/internal/repository"
	"github.com/vocastudio/voca-backend/internal/response"
)

// UserService handles account management inside an academy.
type UserService struct {
	users *repository.UserRepository
	auth  *AuthService
	log   zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users *repository.UserRepository, auth *AuthService, log zerolog.Logger) *UserService {
	return &UserService{
		users: users,
		auth:  auth,
		log:   log.With().Str("component", "user_service").Logger(),
	}
}

// GetByID retrieves a user.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetByUsername retrieves a user by login name.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// List retrieves an academy's accounts with pagination and optional role filter.
func (s *UserService) List(ctx context.Context, academyID int, role *model.Role, page, perPage int) ([]model.User, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	users, total, err := s.users.ListByAcademyPaginated(ctx, academyID, role, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if users == nil {
		users = []model.User{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return users, pagination, nil
}

// Create registers an account with a freshly hashed password.
func (s *UserService) Create(ctx context.Context, academyID int, req *model.CreateUserRequest) (*model.User, error) {
	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		AcademyID:    &academyID,
		Username:     req.Username,
		Name:         req.Name,
		Role:         model.Role(req.Role),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Int("user_id", user.ID).Str("role", req.Role).Msg("User created")
	return user, nil
}

// Update modifies an account; a non-empty password is re-hashed.
func (s *UserService) Update(ctx context.Context, academyID, id int, req *model.UpdateUserRequest) (*model.User, error) {
	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.AcademyID == nil || *existing.AcademyID != academyID {
		return nil, ErrWrongAcademy
	}

	existing.Name = req.Name
	existing.Role = model.Role(req.Role)
	existing.PasswordHash = ""
	if req.Password != "" {
		hash, err := s.auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		existing.PasswordHash = hash
	}

	if err := s.users.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// Delete removes an account after the tenant check.
func (s *UserService) Delete(ctx context.Context, academyID, id int) error {
	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.AcademyID == nil || *existing.AcademyID != academyID {
		return ErrWrongAcademy
	}
	return s.users.Delete(ctx, id)
}
