package services_test

import (
	"testing"
	"time"

	"dailydiet/internal/models"
	"dailydiet/internal/services"

	"github.com/stretchr/testify/assert"
)

// mealSeq builds a meal list ordered by date descending from in-diet flags
// given newest first.
func mealSeq(flags ...bool) []models.Meal {
	base := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	meals := make([]models.Meal, 0, len(flags))
	for i, inDiet := range flags {
		meals = append(meals, models.Meal{
			ID:     "meal-" + string(rune('a'+i)),
			InDiet: inDiet,
			Date:   base.Add(-time.Duration(i) * time.Hour).UnixMilli(),
		})
	}
	return meals
}

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name     string
		meals    []models.Meal
		expected services.MealMetrics
	}{
		{
			name:     "empty history",
			meals:    nil,
			expected: services.MealMetrics{},
		},
		{
			name:  "all meals in diet",
			meals: mealSeq(true, true, true, true),
			expected: services.MealMetrics{
				TotalMeals:          4,
				MealsInDiet:         4,
				BestStreak:          4,
				CurrentInDietStreak: 4,
			},
		},
		{
			name:  "all meals out of diet",
			meals: mealSeq(false, false, false),
			expected: services.MealMetrics{
				TotalMeals:   3,
				MealsOutDiet: 3,
			},
		},
		{
			name:  "two recent in-diet meals after an out-of-diet one",
			meals: mealSeq(true, true, false),
			expected: services.MealMetrics{
				TotalMeals:          3,
				MealsInDiet:         2,
				MealsOutDiet:        1,
				BestStreak:          2,
				CurrentInDietStreak: 2,
			},
		},
		{
			name:  "most recent meal out of diet zeroes the current streak",
			meals: mealSeq(false, true, true, true),
			expected: services.MealMetrics{
				TotalMeals:          4,
				MealsInDiet:         3,
				MealsOutDiet:        1,
				BestStreak:          3,
				CurrentInDietStreak: 0,
			},
		},
		{
			name:  "best streak sits deeper in the history than the current one",
			meals: mealSeq(true, false, true, true, true, false),
			expected: services.MealMetrics{
				TotalMeals:          6,
				MealsInDiet:         4,
				MealsOutDiet:        2,
				BestStreak:          3,
				CurrentInDietStreak: 1,
			},
		},
		{
			name:  "single in-diet meal",
			meals: mealSeq(true),
			expected: services.MealMetrics{
				TotalMeals:          1,
				MealsInDiet:         1,
				BestStreak:          1,
				CurrentInDietStreak: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.ComputeMetrics(tt.meals)
			assert.Equal(t, tt.expected, got)

			// Invariants that hold for every history.
			assert.Equal(t, got.TotalMeals, got.MealsInDiet+got.MealsOutDiet)
			assert.GreaterOrEqual(t, got.BestStreak, got.CurrentInDietStreak)
		})
	}
}
