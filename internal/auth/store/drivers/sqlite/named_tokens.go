package sqlite

import (
	"context"
	"time"

	"github.com/hotellisting/hotellisting/internal/auth/domain"
)

type namedTokensRepo struct {
	db dbtx
}

func (r *namedTokensRepo) CreateNamedToken(ctx context.Context, t domain.NamedToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO named_tokens (id, user_id, provider, name, token_hash, security_stamp, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Provider, t.Name, t.TokenHash, t.SecurityStamp, t.ExpiresAt.UTC(), time.Now().UTC())
	return mapConstraint(err)
}

func (r *namedTokensRepo) GetNamedToken(ctx context.Context, userID, provider, name string) (domain.NamedToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, provider, name, token_hash, security_stamp, expires_at, created_at
		 FROM named_tokens
		 WHERE user_id = ? AND provider = ? AND name = ?`,
		userID, provider, name)

	var t domain.NamedToken
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Provider,
		&t.Name,
		&t.TokenHash,
		&t.SecurityStamp,
		&t.ExpiresAt,
		&t.CreatedAt,
	)
	if err != nil {
		return domain.NamedToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *namedTokensRepo) RemoveNamedToken(ctx context.Context, userID, provider, name string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM named_tokens WHERE user_id = ? AND provider = ? AND name = ?`,
		userID, provider, name)
	return err
}

func (r *namedTokensRepo) DeleteExpiredNamedTokens(ctx context.Context, before time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM named_tokens WHERE expires_at < ?`, before.UTC())
	return err
}
