package employees

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, employee Employee) error {
	const query = `
INSERT INTO employees (id, company_id, name, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		employee.ID,
		employee.CompanyID,
		employee.Name,
		nullableString(employee.Role),
		employee.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, companyID, employeeID string) (Employee, error) {
	const query = `
SELECT id, company_id, name, role, created_at, updated_at
FROM employees
WHERE company_id = $1 AND id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, companyID, employeeID)
	employee, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}
	return employee, nil
}

func (r *PGRepo) ListByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	const query = `
SELECT id, company_id, name, role, created_at, updated_at
FROM employees
WHERE company_id = $1
ORDER BY name ASC`
	rows, err := r.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, employee)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (Employee, error) {
	var employee Employee
	var role sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&employee.ID,
		&employee.CompanyID,
		&employee.Name,
		&role,
		&employee.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return Employee{}, err
	}
	if role.Valid {
		employee.Role = role.String
	}
	if updatedAt.Valid {
		employee.UpdatedAt = updatedAt.Time
	} else {
		employee.UpdatedAt = employee.CreatedAt
	}
	return employee, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
