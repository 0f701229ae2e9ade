package store

import (
	"context"
	"errors"

	"github.com/pantrybook/pantry/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Meals() Meals
	Groceries() Groceries

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and rolling
	// back on error. Preferred over Tx for multi-step operations such as
	// sign-up (create user + seed meal slots atomically).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos, plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during credential verification. The email must
	// already be case-normalized by the caller.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken; uniqueness is
	// enforced by the schema.
	CreateUser(ctx context.Context, u domain.User) error
}

type Meals interface {
	// ListMealsByUser returns the user's meal slots in weekday order.
	ListMealsByUser(ctx context.Context, userID string) ([]domain.MealItem, error)

	// GetMealByID returns a single meal slot.
	GetMealByID(ctx context.Context, id string) (domain.MealItem, error)

	// CreateMeal inserts a meal slot (used when seeding a new account).
	CreateMeal(ctx context.Context, m domain.MealItem) error

	// UpdateMeal replaces name/notes of a slot and bumps updated_at.
	UpdateMeal(ctx context.Context, id, name, notes string) error
}

type Groceries interface {
	// ListGroceriesByUser returns the user's grocery items, newest first.
	ListGroceriesByUser(ctx context.Context, userID string) ([]domain.GroceryItem, error)

	// GetGroceryByID returns a single grocery item.
	GetGroceryByID(ctx context.Context, id string) (domain.GroceryItem, error)

	// CreateGrocery inserts a grocery item.
	CreateGrocery(ctx context.Context, g domain.GroceryItem) error

	// DeleteGrocery removes an item. Returns ErrNotFound when no row matched.
	DeleteGrocery(ctx context.Context, id string) error
}
