package repositories

import (
	"errors"
	"fmt"

	"dailydiet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMealRepository is a GORM implementation of MealRepository.
type GORMMealRepository struct {
	db *gorm.DB
}

// NewGORMMealRepository creates a new instance of GORMMealRepository.
func NewGORMMealRepository(db *gorm.DB) *GORMMealRepository {
	return &GORMMealRepository{
		db: db,
	}
}

// Create creates a new meal in the database.
func (r *GORMMealRepository) Create(meal *models.Meal) error {
	if meal.ID == "" {
		meal.ID = uuid.New().String()
	}
	if err := r.db.Create(meal).Error; err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}
	return nil
}

// GetAllByUser retrieves the owner's meals ordered by date descending. Ties on
// date are broken by id so the ordering is stable across queries.
func (r *GORMMealRepository) GetAllByUser(userID string) ([]models.Meal, error) {
	meals := make([]models.Meal, 0)
	err := r.db.Where("user_id = ?", userID).Order("date DESC, id").Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get meals for user %s: %w", userID, err)
	}
	return meals, nil
}

// GetByID retrieves a single meal owned by the given user. A meal owned by a
// different user yields the same ErrNotFound as a missing one.
func (r *GORMMealRepository) GetByID(userID, id string) (*models.Meal, error) {
	var meal models.Meal
	err := r.db.First(&meal, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("meal %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get meal %s: %w", id, err)
	}
	return &meal, nil
}

// Update applies the supplied columns to the owner's meal. Zero matched rows
// is not an error here; the endpoint answers 204 either way.
func (r *GORMMealRepository) Update(userID, id string, fields map[string]interface{}) error {
	res := r.db.Model(&models.Meal{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update meal %s: %w", id, res.Error)
	}
	return nil
}

// Delete removes the owner's meal by its ID.
func (r *GORMMealRepository) Delete(userID, id string) error {
	res := r.db.Delete(&models.Meal{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete meal %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("meal %s: %w", id, ErrNotFound)
	}
	return nil
}
