package services

import "dailydiet/internal/models"

// MealMetrics summarizes a user's diet adherence.
type MealMetrics struct {
	TotalMeals          int `json:"totalMeals"`
	MealsInDiet         int `json:"mealsInDiet"`
	MealsOutDiet        int `json:"mealsOutDiet"`
	BestStreak          int `json:"bestStreak"`
	CurrentInDietStreak int `json:"currentInDietStreak"`
}

// ComputeMetrics walks the meal list once and computes all metrics. The input
// must be ordered by date descending (most recent first); the ordering is the
// repository's responsibility.
//
// BestStreak is the longest contiguous run of in-diet meals anywhere in the
// history. CurrentInDietStreak is the in-diet run starting at the most recent
// meal; it freezes at the first out-of-diet meal while the walk continues to
// finish BestStreak over the rest of the history.
func ComputeMetrics(meals []models.Meal) MealMetrics {
	var m MealMetrics
	var runningStreak int
	var foundOutDietMeal bool

	for _, meal := range meals {
		m.TotalMeals++
		if meal.InDiet {
			m.MealsInDiet++
			runningStreak++
			if !foundOutDietMeal {
				m.CurrentInDietStreak++
			}
		} else {
			m.MealsOutDiet++
			runningStreak = 0
			foundOutDietMeal = true
		}
		if runningStreak > m.BestStreak {
			m.BestStreak = runningStreak
		}
	}
	return m
}
