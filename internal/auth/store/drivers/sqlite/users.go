package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/hotellisting/hotellisting/internal/auth/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, first_name, last_name, password_hash, security_stamp, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.PasswordHash,
		&u.SecurityStamp,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)

	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, first_name, last_name, password_hash, security_stamp, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.SecurityStamp, now, now)
	return mapConstraint(err)
}

func (r *usersRepo) ListUserRoles(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT r.name
		 FROM user_roles ur
		 JOIN roles r ON r.id = ur.role_id
		 WHERE ur.user_id = ?
		 ORDER BY r.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (r *usersRepo) AddUserToRole(ctx context.Context, userID string, roleName string) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_roles (user_id, role_id)
		 SELECT ?, id FROM roles WHERE name = ?`, userID, roleName)
	if err != nil {
		return err
	}

	// Zero rows means either the role name is unknown or the grant already
	// existed; distinguish by probing the role.
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var id string
		row := r.db.QueryRowContext(ctx, `SELECT id FROM roles WHERE name = ?`, roleName)
		if err := row.Scan(&id); err != nil {
			return mapNotFound(err)
		}
	}
	return nil
}

func (r *usersRepo) ListUserClaims(ctx context.Context, userID string) ([]domain.Claim, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT claim_type, claim_value FROM user_claims WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.Claim
	for rows.Next() {
		var c domain.Claim
		if err := rows.Scan(&c.Type, &c.Value); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}

func (r *usersRepo) AddUserClaim(ctx context.Context, userID string, c domain.Claim) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_claims (user_id, claim_type, claim_value) VALUES (?, ?, ?)`,
		userID, c.Type, c.Value)
	return err
}

func (r *usersRepo) UpdateSecurityStamp(ctx context.Context, userID string, stamp string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET security_stamp = ?, updated_at = ? WHERE id = ?`,
		stamp, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
