package domain

import "time"

// GroceryItem is one grocery list entry.
type GroceryItem struct {
	ID        string
	UserID    string
	Name      string
	Quantity  int
	CreatedAt time.Time
}
