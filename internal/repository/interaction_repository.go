package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tberkay/customer-crm/internal/model"
)

// InteractionRepo manages persistence for interactions.
type InteractionRepo struct {
	db *sql.DB
}

// NewInteractionRepo constructs an InteractionRepo with the given DB handle.
func NewInteractionRepo(db *sql.DB) *InteractionRepo {
	return &InteractionRepo{db: db}
}

// Create inserts a new interaction linked to i.CustomerID and assigns the
// generated ID back to the struct.
func (r *InteractionRepo) Create(ctx context.Context, i *model.Interaction) error {
	const q = `INSERT INTO interactions (customer_id, type, notes) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, i.CustomerID, i.Type, nullable(i.Notes))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	i.ID = uint64(id)
	return nil
}

// GetByID retrieves an interaction by its ID. It returns ErrNotFound if
// there is no matching row.
func (r *InteractionRepo) GetByID(ctx context.Context, id uint64) (*model.Interaction, error) {
	const q = `SELECT id, customer_id, type, notes, created_at FROM interactions WHERE id = ?`
	var (
		i     model.Interaction
		notes sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&i.ID, &i.CustomerID, &i.Type, &notes, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	i.Notes = notes.String
	return &i, nil
}

// ListByCustomer returns all interactions belonging to one customer in
// insertion order.
func (r *InteractionRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]*model.Interaction, error) {
	const q = `SELECT id, customer_id, type, notes, created_at FROM interactions WHERE customer_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*model.Interaction{}
	for rows.Next() {
		var (
			i     model.Interaction
			notes sql.NullString
		)
		if err := rows.Scan(&i.ID, &i.CustomerID, &i.Type, &notes, &i.CreatedAt); err != nil {
			return nil, err
		}
		i.Notes = notes.String
		out = append(out, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the global number of interactions across all customers.
func (r *InteractionRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM interactions`).Scan(&n)
	return n, err
}

// Update overwrites type and notes of an existing interaction. It returns
// ErrNotFound when the id does not exist; like CustomerRepo.Update it
// confirms absence with a lookup because unchanged values also report zero
// affected rows.
func (r *InteractionRepo) Update(ctx context.Context, i *model.Interaction) error {
	const q = `UPDATE interactions SET type = ?, notes = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, i.Type, nullable(i.Notes), i.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists uint64
		if err := r.db.QueryRowContext(ctx, `SELECT id FROM interactions WHERE id = ?`, i.ID).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a single interaction. ErrNotFound is returned when the id
// does not exist.
func (r *InteractionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM interactions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
