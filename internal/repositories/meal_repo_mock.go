package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"dailydiet/internal/models"

	"github.com/google/uuid"
)

// MockMealRepository is an in-memory implementation of MealRepository.
type MockMealRepository struct {
	meals map[string]models.Meal
	mu    sync.RWMutex
}

// NewMockMealRepository creates a new instance of MockMealRepository.
func NewMockMealRepository() *MockMealRepository {
	return &MockMealRepository{
		meals: make(map[string]models.Meal),
	}
}

// Create adds a new meal.
func (r *MockMealRepository) Create(meal *models.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if meal.ID == "" {
		meal.ID = uuid.New().String()
	}
	if meal.CreatedAt.IsZero() {
		meal.CreatedAt = time.Now()
		meal.UpdatedAt = meal.CreatedAt
	}
	r.meals[meal.ID] = *meal
	return nil
}

// GetAllByUser returns the owner's meals ordered by date descending, id
// ascending on ties.
func (r *MockMealRepository) GetAllByUser(userID string) ([]models.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mealList := make([]models.Meal, 0)
	for _, m := range r.meals {
		if m.UserID == userID {
			mealList = append(mealList, m)
		}
	}
	sort.Slice(mealList, func(i, j int) bool {
		if mealList[i].Date != mealList[j].Date {
			return mealList[i].Date > mealList[j].Date
		}
		return mealList[i].ID < mealList[j].ID
	})
	return mealList, nil
}

// GetByID returns the owner's meal by its ID.
func (r *MockMealRepository) GetByID(userID, id string) (*models.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meal, ok := r.meals[id]
	if !ok || meal.UserID != userID {
		return nil, fmt.Errorf("meal %s: %w", id, ErrNotFound)
	}
	return &meal, nil
}

// Update applies the supplied columns to the owner's meal. A miss on the
// (id, user_id) filter is silently ignored, matching the GORM implementation.
func (r *MockMealRepository) Update(userID, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	meal, ok := r.meals[id]
	if !ok || meal.UserID != userID {
		return nil
	}
	if v, ok := fields["name"]; ok {
		meal.Name = v.(string)
	}
	if v, ok := fields["description"]; ok {
		meal.Description = v.(string)
	}
	if v, ok := fields["in_diet"]; ok {
		meal.InDiet = v.(bool)
	}
	if v, ok := fields["date"]; ok {
		meal.Date = v.(int64)
	}
	meal.UpdatedAt = time.Now()
	r.meals[id] = meal
	return nil
}

// Delete removes the owner's meal by its ID.
func (r *MockMealRepository) Delete(userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	meal, ok := r.meals[id]
	if !ok || meal.UserID != userID {
		return fmt.Errorf("meal %s: %w", id, ErrNotFound)
	}
	delete(r.meals, id)
	return nil
}

// deleteAllByUser drops every meal owned by the user. Used by the mock user
// repository to mirror the cascade delete.
func (r *MockMealRepository) deleteAllByUser(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, m := range r.meals {
		if m.UserID == userID {
			delete(r.meals, id)
		}
	}
}
