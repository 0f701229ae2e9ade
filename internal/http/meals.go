package httpapi

import (
	"net/http"
	"time"

	"github.com/pantrybook/pantry/internal/domain"
	"github.com/pantrybook/pantry/internal/service"
	"github.com/pantrybook/pantry/pkg/api"
	"github.com/pantrybook/pantry/pkg/httpx"
)

// MealsHandler serves the weekly meal plan for the authenticated user.
type MealsHandler struct {
	Meals *service.MealService
}

// List handles GET /v1/meals.
func (h *MealsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	items, err := h.Meals.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mealResponses(items))
}

// Update handles PUT /v1/meals/{id}.
func (h *MealsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	mealID := r.PathValue("id")

	var req api.UpdateMealRequest
	if err := decodeJSON(w, r, &req); err != nil {
		api.ErrInvalidInput.WriteError(w)
		return
	}

	item, err := h.Meals.Update(r.Context(), userID, mealID, req.Name, req.Notes)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, mealResponse(item))
}

func mealResponse(m domain.MealItem) api.MealItemResponse {
	return api.MealItemResponse{
		ID:        m.ID,
		Day:       m.Day,
		Name:      m.Name,
		Notes:     m.Notes,
		UpdatedAt: m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mealResponses(items []domain.MealItem) []api.MealItemResponse {
	out := make([]api.MealItemResponse, 0, len(items))
	for _, m := range items {
		out = append(out, mealResponse(m))
	}
	return out
}
