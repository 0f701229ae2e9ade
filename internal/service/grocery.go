package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pantrybook/pantry/internal/domain"
	"github.com/pantrybook/pantry/internal/store"
	"github.com/pantrybook/pantry/pkg/idx"
)

// GroceryService serves the grocery-list CRUD surface.
type GroceryService struct {
	Store store.Store
}

// List returns the caller's grocery items, newest first.
func (s *GroceryService) List(ctx context.Context, userID string) ([]domain.GroceryItem, error) {
	return s.Store.Groceries().ListGroceriesByUser(ctx, userID)
}

// Add appends an item to the caller's list. Quantity defaults to 1.
func (s *GroceryService) Add(ctx context.Context, userID, name string, quantity int) (domain.GroceryItem, error) {
	name = strings.TrimSpace(name)
	if name == "" || quantity < 0 {
		return domain.GroceryItem{}, ErrInvalidInput
	}
	if quantity == 0 {
		quantity = 1
	}

	item := domain.GroceryItem{
		ID:        idx.New().String(),
		UserID:    userID,
		Name:      name,
		Quantity:  quantity,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Groceries().CreateGrocery(ctx, item); err != nil {
		return domain.GroceryItem{}, err
	}
	return item, nil
}

// Delete removes one of the caller's items. Items owned by someone else are
// reported as not found.
func (s *GroceryService) Delete(ctx context.Context, userID, itemID string) error {
	item, err := s.Store.Groceries().GetGroceryByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if item.UserID != userID {
		return ErrNotFound
	}

	if err := s.Store.Groceries().DeleteGrocery(ctx, itemID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
