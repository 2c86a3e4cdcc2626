package services

import (
	"dailydiet/internal/models"
	"dailydiet/internal/repositories"
)

// UserService handles business logic related to user accounts.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// GetAllUsers retrieves all users, newest first.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.repo.GetAll()
}

// DeleteUser removes a user and all their meals.
func (s *UserService) DeleteUser(id string) error {
	return s.repo.Delete(id)
}
