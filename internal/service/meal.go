package service

import (
	"context"
	"errors"
	"strings"

	"github.com/pantrybook/pantry/internal/domain"
	"github.com/pantrybook/pantry/internal/store"
)

// MealService serves the meal-plan CRUD surface. It operates strictly within
// the verified identity handed to it by the session core.
type MealService struct {
	Store store.Store
}

// List returns the caller's meal slots in weekday order.
func (s *MealService) List(ctx context.Context, userID string) ([]domain.MealItem, error) {
	return s.Store.Meals().ListMealsByUser(ctx, userID)
}

// Update replaces the name/notes of one of the caller's slots. A slot owned
// by someone else is reported as not found, same as a missing one.
func (s *MealService) Update(ctx context.Context, userID, mealID, name, notes string) (domain.MealItem, error) {
	meal, err := s.Store.Meals().GetMealByID(ctx, mealID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.MealItem{}, ErrNotFound
		}
		return domain.MealItem{}, err
	}
	if meal.UserID != userID {
		return domain.MealItem{}, ErrNotFound
	}

	// An empty name clears the slot; notes ride along.
	name = strings.TrimSpace(name)
	if err := s.Store.Meals().UpdateMeal(ctx, mealID, name, strings.TrimSpace(notes)); err != nil {
		return domain.MealItem{}, err
	}

	return s.Store.Meals().GetMealByID(ctx, mealID)
}
