package sqlite

import (
	"context"
	"time"

	"github.com/pantrybook/pantry/internal/domain"
	"github.com/pantrybook/pantry/internal/store"
)

type mealsRepo struct {
	db dbtx
}

const mealColumns = `id, user_id, day, name, notes, created_at, updated_at`

func (r *mealsRepo) ListMealsByUser(ctx context.Context, userID string) ([]domain.MealItem, error) {
	// Slots are seeded in weekday order with monotonic ULIDs, so id order is
	// weekday order.
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+mealColumns+` FROM meal_items WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MealItem
	for rows.Next() {
		var m domain.MealItem
		if err := rows.Scan(&m.ID, &m.UserID, &m.Day, &m.Name, &m.Notes, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *mealsRepo) GetMealByID(ctx context.Context, id string) (domain.MealItem, error) {
	var m domain.MealItem
	err := r.db.QueryRowContext(ctx,
		`SELECT `+mealColumns+` FROM meal_items WHERE id = ?`, id).
		Scan(&m.ID, &m.UserID, &m.Day, &m.Name, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.MealItem{}, mapNotFound(err)
	}
	return m, nil
}

func (r *mealsRepo) CreateMeal(ctx context.Context, m domain.MealItem) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO meal_items (id, user_id, day, name, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.UserID, m.Day, m.Name, m.Notes, m.CreatedAt, m.UpdatedAt)
	return mapConstraint(err)
}

func (r *mealsRepo) UpdateMeal(ctx context.Context, id, name, notes string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE meal_items SET name = ?, notes = ?, updated_at = ? WHERE id = ?`,
		name, notes, time.Now().UTC(), id)
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
