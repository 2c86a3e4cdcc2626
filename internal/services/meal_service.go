package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"dailydiet/internal/models"
	"dailydiet/internal/repositories"
	"dailydiet/pkg/rabbitmq"
)

// ErrNoFieldsToUpdate is returned when a meal update supplies no fields.
var ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")

// MealUpdate carries the optional fields of a partial meal update. Nil means
// the field was not supplied and must be left untouched.
type MealUpdate struct {
	Name        *string
	Description *string
	InDiet      *bool
	Date        *time.Time
}

// MealService handles business logic related to meals. All operations are
// scoped to the owning user.
type MealService struct {
	mealRepo repositories.MealRepository
	mqClient *rabbitmq.Client
}

// NewMealService creates a new MealService. The RabbitMQ client may be nil,
// in which case no events are published.
func NewMealService(mealRepo repositories.MealRepository, mqClient *rabbitmq.Client) *MealService {
	return &MealService{
		mealRepo: mealRepo,
		mqClient: mqClient,
	}
}

// CreateMeal records a new meal for the user. The eaten-at instant is stored
// as epoch milliseconds.
func (s *MealService) CreateMeal(userID, name, description string, inDiet bool, date time.Time) (*models.Meal, error) {
	meal := &models.Meal{
		Name:        name,
		Description: description,
		InDiet:      inDiet,
		Date:        date.UnixMilli(),
		UserID:      userID,
	}
	if err := s.mealRepo.Create(meal); err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	if s.mqClient != nil {
		event := map[string]interface{}{
			"mealID":  meal.ID,
			"userID":  meal.UserID,
			"name":    meal.Name,
			"inDiet":  meal.InDiet,
			"date":    meal.Date,
		}
		if err := s.mqClient.PublishMealCreated(event); err != nil {
			log.Printf("Warning: failed to publish meal created event for meal %s: %v", meal.ID, err)
		}
	}

	return meal, nil
}

// GetMeals returns the user's meals ordered by date descending.
func (s *MealService) GetMeals(userID string) ([]models.Meal, error) {
	return s.mealRepo.GetAllByUser(userID)
}

// GetMealByID returns a single meal owned by the user.
func (s *MealService) GetMealByID(userID, id string) (*models.Meal, error) {
	return s.mealRepo.GetByID(userID, id)
}

// UpdateMeal applies a partial update to the user's meal. Only supplied
// fields are written; supplied-but-empty strings count as absent. A filter
// miss is not reported, matching the endpoint's 204-on-zero-rows behavior.
func (s *MealService) UpdateMeal(userID, id string, update MealUpdate) error {
	fields := make(map[string]interface{})
	if update.Name != nil && *update.Name != "" {
		fields["name"] = *update.Name
	}
	if update.Description != nil && *update.Description != "" {
		fields["description"] = *update.Description
	}
	if update.InDiet != nil {
		fields["in_diet"] = *update.InDiet
	}
	if update.Date != nil {
		fields["date"] = update.Date.UnixMilli()
	}
	if len(fields) == 0 {
		return ErrNoFieldsToUpdate
	}
	return s.mealRepo.Update(userID, id, fields)
}

// DeleteMeal removes the user's meal.
func (s *MealService) DeleteMeal(userID, id string) error {
	return s.mealRepo.Delete(userID, id)
}

// GetMetrics computes adherence metrics over the user's full meal history.
func (s *MealService) GetMetrics(userID string) (*MealMetrics, error) {
	meals, err := s.mealRepo.GetAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load meals for metrics: %w", err)
	}
	metrics := ComputeMetrics(meals)
	return &metrics, nil
}
