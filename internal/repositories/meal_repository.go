package repositories

import "dailydiet/internal/models"

// MealRepository defines the interface for meal data access. Every lookup is
// scoped by (id, user_id) so cross-user access is indistinguishable from a
// missing record.
type MealRepository interface {
	Create(meal *models.Meal) error
	// GetAllByUser returns the owner's meals ordered by date descending.
	GetAllByUser(userID string) ([]models.Meal, error)
	GetByID(userID, id string) (*models.Meal, error)
	// Update applies only the supplied columns. It reports success even when
	// no row matched the (id, user_id) filter.
	Update(userID, id string, fields map[string]interface{}) error
	Delete(userID, id string) error
}
