package sqlite

import (
	"context"

	"github.com/pantrybook/pantry/internal/domain"
	"github.com/pantrybook/pantry/internal/store"
)

type groceriesRepo struct {
	db dbtx
}

func (r *groceriesRepo) ListGroceriesByUser(ctx context.Context, userID string) ([]domain.GroceryItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, quantity, created_at
		 FROM grocery_items WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.GroceryItem
	for rows.Next() {
		var g domain.GroceryItem
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Quantity, &g.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

func (r *groceriesRepo) GetGroceryByID(ctx context.Context, id string) (domain.GroceryItem, error) {
	var g domain.GroceryItem
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, quantity, created_at
		 FROM grocery_items WHERE id = ?`, id).
		Scan(&g.ID, &g.UserID, &g.Name, &g.Quantity, &g.CreatedAt)
	if err != nil {
		return domain.GroceryItem{}, mapNotFound(err)
	}
	return g, nil
}

func (r *groceriesRepo) CreateGrocery(ctx context.Context, g domain.GroceryItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO grocery_items (id, user_id, name, quantity, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Name, g.Quantity, g.CreatedAt)
	return mapConstraint(err)
}

func (r *groceriesRepo) DeleteGrocery(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM grocery_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
