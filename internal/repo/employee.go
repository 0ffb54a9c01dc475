package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/scim-provision/internal/models"
)

// EmployeeRepo persists provisioned SCIM User resources.
type EmployeeRepo struct {
	db *sql.DB
}

// NewEmployeeRepo returns a new EmployeeRepo.
func NewEmployeeRepo(db *sql.DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

const employeeColumns = `id, username, meta, created_at, updated_at`

// Create inserts a new employee. The store assigns id, created_at and
// updated_at; both timestamps start equal.
func (r *EmployeeRepo) Create(ctx context.Context, username, meta string) (*models.Employee, error) {
	query := `
		INSERT INTO employees (username, meta)
		VALUES ($1, $2)
		RETURNING ` + employeeColumns

	e := &models.Employee{}
	err := r.db.QueryRowContext(ctx, query, username, meta).
		Scan(&e.ID, &e.Username, &e.Meta, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetByID returns the employee with the given id, or sql.ErrNoRows.
func (r *EmployeeRepo) GetByID(ctx context.Context, id int) (*models.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE id = $1`

	e := &models.Employee{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&e.ID, &e.Username, &e.Meta, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// FindByUsername returns all employees with the given username, in id order.
// No match is an empty slice, not an error.
func (r *EmployeeRepo) FindByUsername(ctx context.Context, username string) ([]models.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE username = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Username, &e.Meta, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update replaces username and meta and refreshes updated_at. created_at is
// never touched after insert.
func (r *EmployeeRepo) Update(ctx context.Context, id int, username, meta string) (*models.Employee, error) {
	query := `
		UPDATE employees
		SET username = $1, meta = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING ` + employeeColumns

	e := &models.Employee{}
	err := r.db.QueryRowContext(ctx, query, username, meta, id).
		Scan(&e.ID, &e.Username, &e.Meta, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes the employee with the given id. Returns sql.ErrNoRows when
// no row was deleted.
func (r *EmployeeRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
