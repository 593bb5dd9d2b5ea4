package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tberkay/customer-crm/internal/model"
)

func newCustomerRepoMock(t *testing.T) (*CustomerRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCustomerRepo(db), mock
}

func customerRows(customers ...*model.Customer) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "created_at"})
	for _, c := range customers {
		rows.AddRow(c.ID, c.Name, c.Email, c.Phone, time.Now())
	}
	return rows
}

func TestCustomerCreateAssignsID(t *testing.T) {
	repo, mock := newCustomerRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO customers (name, email, phone) VALUES (?, ?, ?)`)).
		WithArgs("Alice", "a@x.com", "555-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	c := &model.Customer{Name: "Alice", Email: "a@x.com", Phone: "555-1"}
	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, uint64(1), c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerGetByIDNotFound(t *testing.T) {
	repo, mock := newCustomerRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, phone, created_at FROM customers WHERE id = ?`)).
		WithArgs(uint64(42)).
		WillReturnRows(customerRows())

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerSearchByNameLowercasesQuery(t *testing.T) {
	repo, mock := newCustomerRepoMock(t)

	alice := &model.Customer{ID: 1, Name: "Alice", Email: "a@x.com"}
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name, email, phone, created_at FROM customers WHERE LOWER(name) LIKE ? ORDER BY id`)).
		WithArgs("%ali%").
		WillReturnRows(customerRows(alice))

	got, err := repo.SearchByName(context.Background(), "ALI")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerSearchByNameEmptyQueryMatchesAll(t *testing.T) {
	repo, mock := newCustomerRepoMock(t)

	all := []*model.Customer{
		{ID: 1, Name: "Alice", Email: "a@x.com"},
		{ID: 2, Name: "Bob", Email: "b@x.com"},
	}
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE LOWER(name) LIKE ?`)).
		WithArgs("%%").
		WillReturnRows(customerRows(all...))

	got, err := repo.SearchByName(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerUpdateMissingRowReturnsNotFound(t *testing.T) {
	repo, mock := newCustomerRepoMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE customers SET name = ?, email = ?, phone = ? WHERE id = ?`)).
		WithArgs("Alice", "a@x.com", sqlmock.AnyArg(), uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM customers WHERE id = ?`)).
		WithArgs(uint64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.Update(context.Background(), &model.Customer{ID: 9, Name: "Alice", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerUpdateUnchangedValuesIsNotAnError(t *testing.T) {
	repo, mock := newCustomerRepoMock(t)

	// MySQL reports zero affected rows when the new values equal the old
	// ones; the repo must not mistake that for a missing row.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE customers SET`)).
		WithArgs("Alice", "a@x.com", sqlmock.AnyArg(), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM customers WHERE id = ?`)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := repo.Update(context.Background(), &model.Customer{ID: 1, Name: "Alice", Email: "a@x.com"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascadeRemovesChildrenThenParent(t *testing.T) {
	repo, mock := newCustomerRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM customers WHERE id = ?`)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM interactions WHERE customer_id = ?`)).
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM customers WHERE id = ?`)).
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteCascade(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascadeMissingCustomerRollsBack(t *testing.T) {
	repo, mock := newCustomerRepoMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM customers WHERE id = ?`)).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteCascadeChildFailureRollsBackEverything(t *testing.T) {
	repo, mock := newCustomerRepoMock(t)

	boom := errors.New("constraint violation")
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM customers WHERE id = ?`)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM interactions WHERE customer_id = ?`)).
		WithArgs(uint64(1)).
		WillReturnError(boom)
	mock.ExpectRollback()

	err := repo.DeleteCascade(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	// No commit expectation: the parent delete never ran and nothing was kept.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerCount(t *testing.T) {
	repo, mock := newCustomerRepoMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM customers`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
