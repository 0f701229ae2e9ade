package domain

import "time"

// Weekday slot labels for the meal plan, in display order.
var WeekDays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// MealItem is one planned meal slot. Sign-up seeds an empty slot per weekday;
// clients update slots in place rather than creating or deleting them.
type MealItem struct {
	ID        string
	UserID    string
	Day       string
	Name      string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
