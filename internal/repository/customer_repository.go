// Package repository contains data access logic for the CRM tables. This
// file defines repository methods for customers. Deleting a customer also
// removes its interactions; the two deletes run inside one transaction so
// the cascade is all-or-nothing.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tberkay/customer-crm/internal/model"
)

// CustomerRepo manages persistence for customers.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo constructs a CustomerRepo with the given DB handle.
func NewCustomerRepo(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

// Create inserts a new customer and assigns the generated ID back to the
// struct. Name, email and phone are stored as given; only required-ness is
// validated, and that happens in the handler.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	const q = `INSERT INTO customers (name, email, phone) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Email, nullable(c.Phone))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID retrieves a customer by its ID. It returns ErrNotFound if there
// is no matching row.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (*model.Customer, error) {
	const q = `SELECT id, name, email, phone, created_at FROM customers WHERE id = ?`
	var (
		c     model.Customer
		phone sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Email, &phone, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.Phone = phone.String
	return &c, nil
}

// ListAll returns every customer in insertion order.
func (r *CustomerRepo) ListAll(ctx context.Context) ([]*model.Customer, error) {
	const q = `SELECT id, name, email, phone, created_at FROM customers ORDER BY id`
	return r.queryCustomers(ctx, q)
}

// SearchByName returns customers whose name contains the query as a
// case-insensitive substring. An empty query matches everything, so the
// result equals ListAll.
func (r *CustomerRepo) SearchByName(ctx context.Context, query string) ([]*model.Customer, error) {
	const q = `SELECT id, name, email, phone, created_at FROM customers WHERE LOWER(name) LIKE ? ORDER BY id`
	return r.queryCustomers(ctx, q, "%"+strings.ToLower(strings.TrimSpace(query))+"%")
}

func (r *CustomerRepo) queryCustomers(ctx context.Context, q string, args ...any) ([]*model.Customer, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []*model.Customer{}
	for rows.Next() {
		var (
			c     model.Customer
			phone sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &phone, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Phone = phone.String
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the total number of customers.
func (r *CustomerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	return n, err
}

// Update overwrites name, email and phone of an existing customer. It
// returns ErrNotFound when the id does not exist. A zero affected-row
// count alone does not mean the row is missing (MySQL also reports zero
// when the values are unchanged), so absence is confirmed with a lookup.
func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) error {
	const q = `UPDATE customers SET name = ?, email = ?, phone = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, c.Name, c.Email, nullable(c.Phone), c.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var exists uint64
		if err := r.db.QueryRowContext(ctx, `SELECT id FROM customers WHERE id = ?`, c.ID).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return err
		}
	}
	return nil
}

// DeleteCascade removes a customer together with all of its interactions.
// The interactions are deleted first, then the customer, inside a single
// transaction; any failure rolls the whole operation back. ErrNotFound is
// returned when the customer does not exist.
func (r *CustomerRepo) DeleteCascade(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	// Verify the customer exists before touching anything.
	var dbID uint64
	if err = tx.QueryRowContext(ctx, `SELECT id FROM customers WHERE id = ?`, id).Scan(&dbID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrNotFound
		}
		return err
	}
	// Cascade: children first, then the parent.
	if _, err = tx.ExecContext(ctx, `DELETE FROM interactions WHERE customer_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id); err != nil {
		return err
	}
	return nil
}

// nullable maps an empty string to NULL so optional columns stay NULL
// instead of storing empty strings.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
