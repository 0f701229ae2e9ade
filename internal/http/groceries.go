package httpapi

import (
	"net/http"

	"github.com/pantrybook/pantry/internal/domain"
	"github.com/pantrybook/pantry/internal/service"
	"github.com/pantrybook/pantry/pkg/api"
	"github.com/pantrybook/pantry/pkg/httpx"
)

// GroceriesHandler serves the grocery list for the authenticated user.
type GroceriesHandler struct {
	Groceries *service.GroceryService
}

// List handles GET /v1/groceries.
func (h *GroceriesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	items, err := h.Groceries.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]api.GroceryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, groceryResponse(item))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// Add handles POST /v1/groceries.
func (h *GroceriesHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())

	var req api.AddGroceryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		api.ErrInvalidInput.WriteError(w)
		return
	}

	item, err := h.Groceries.Add(r.Context(), userID, req.Name, req.Quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, groceryResponse(item))
}

// Delete handles DELETE /v1/groceries/{id}.
func (h *GroceriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	itemID := r.PathValue("id")

	if err := h.Groceries.Delete(r.Context(), userID, itemID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func groceryResponse(g domain.GroceryItem) api.GroceryItemResponse {
	return api.GroceryItemResponse{
		ID:       g.ID,
		Name:     g.Name,
		Quantity: g.Quantity,
	}
}
