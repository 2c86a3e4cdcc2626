package handlers

import (
	"errors"
	"log"
	"time"

	"dailydiet/internal/repositories"
	"dailydiet/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MealHandler handles HTTP requests for meals. All routes expect the auth
// middleware to have stored the acting user's id in the request context.
type MealHandler struct {
	service  *services.MealService
	validate *validator.Validate
}

// NewMealHandler creates a new MealHandler.
func NewMealHandler(service *services.MealService) *MealHandler {
	return &MealHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the meal routes with the Fiber app, guarded by the
// auth middleware scoped to the /meals prefix. The metrics route is registered
// before the :id route so it is not captured as an id.
func (h *MealHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	mealRoutes := router.Group("/meals", auth)
	mealRoutes.Get("/", h.HandleGetMeals)
	mealRoutes.Get("/metrics", h.HandleGetMetrics)
	mealRoutes.Get("/:id", h.HandleGetMealByID)
	mealRoutes.Post("/", h.HandleCreateMeal)
	mealRoutes.Put("/:id", h.HandleUpdateMeal)
	mealRoutes.Delete("/:id", h.HandleDeleteMeal)
}

// CreateMealRequest represents the request body for meal creation. Date is an
// ISO8601 timestamp.
type CreateMealRequest struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description" validate:"required"`
	InDiet      *bool     `json:"in_diet" validate:"required"`
	Date        time.Time `json:"date" validate:"required"`
}

// UpdateMealRequest represents the request body for a partial meal update.
// Nil fields are left untouched; at least one field must be supplied.
type UpdateMealRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	InDiet      *bool      `json:"in_diet"`
	Date        *time.Time `json:"date"`
}

// HandleGetMeals lists the user's meals ordered by date descending.
func (h *MealHandler) HandleGetMeals(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	meals, err := h.service.GetMeals(userID)
	if err != nil {
		log.Printf("Error getting meals for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve meals",
		})
	}
	return c.JSON(fiber.Map{
		"meals": meals,
	})
}

// HandleGetMetrics returns the user's diet adherence metrics.
func (h *MealHandler) HandleGetMetrics(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	metrics, err := h.service.GetMetrics(userID)
	if err != nil {
		log.Printf("Error computing metrics for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not compute metrics",
		})
	}
	return c.JSON(metrics)
}

// HandleGetMealByID retrieves a single meal owned by the user.
func (h *MealHandler) HandleGetMealByID(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid meal id",
		})
	}

	meal, err := h.service.GetMealByID(userID, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Meal not found",
			})
		}
		log.Printf("Error getting meal %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not retrieve meal",
		})
	}
	return c.JSON(fiber.Map{
		"meal": meal,
	})
}

// HandleCreateMeal records a new meal for the user.
func (h *MealHandler) HandleCreateMeal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	var req CreateMealRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create meal request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	meal, err := h.service.CreateMeal(userID, req.Name, req.Description, *req.InDiet, req.Date)
	if err != nil {
		log.Printf("Error creating meal for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create meal",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"meal": meal,
	})
}

// HandleUpdateMeal applies a partial update to the user's meal. The response
// is 204 even when no row matched the (id, user_id) filter.
func (h *MealHandler) HandleUpdateMeal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid meal id",
		})
	}

	var req UpdateMealRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update meal request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	update := services.MealUpdate{
		Name:        req.Name,
		Description: req.Description,
		InDiet:      req.InDiet,
		Date:        req.Date,
	}
	if err := h.service.UpdateMeal(userID, id, update); err != nil {
		if errors.Is(err, services.ErrNoFieldsToUpdate) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "At least one field must be provided for update",
			})
		}
		log.Printf("Error updating meal %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update meal",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteMeal removes the user's meal.
func (h *MealHandler) HandleDeleteMeal(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid meal id",
		})
	}

	if err := h.service.DeleteMeal(userID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Meal not found",
			})
		}
		log.Printf("Error deleting meal %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete meal",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
