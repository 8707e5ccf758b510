package sqlite

import (
	"context"
	"time"

	"github.com/hotellisting/hotellisting/internal/auth/domain"
)

type rolesRepo struct {
	db dbtx
}

func (r *rolesRepo) GetRoleByName(ctx context.Context, name string) (domain.Role, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM roles WHERE name = ?`, name)

	var role domain.Role
	if err := row.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
		return domain.Role{}, mapNotFound(err)
	}
	return role, nil
}

func (r *rolesRepo) ListAll(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *rolesRepo) CreateRole(ctx context.Context, role domain.Role) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roles (id, name, created_at) VALUES (?, ?, ?)`,
		role.ID, role.Name, time.Now().UTC())
	return mapConstraint(err)
}

func (r *rolesRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roles`)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
