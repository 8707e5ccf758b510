package store

import (
	"context"
	"errors"
	"time"

	"github.com/hotellisting/hotellisting/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and to stop callers from accidentally nesting transactions.
type Store interface {
	Users() Users
	Roles() Roles
	NamedTokens() NamedTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// Use it for multi-step operations that must be atomic (e.g., refresh rotation).
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login; email doubles as the username.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// ListUserRoles returns the names of the roles held by a user.
	ListUserRoles(ctx context.Context, userID string) ([]string, error)

	// AddUserToRole grants a role by name to a user.
	AddUserToRole(ctx context.Context, userID string, roleName string) error

	// ListUserClaims returns the user's stored custom claims.
	ListUserClaims(ctx context.Context, userID string) ([]domain.Claim, error)

	// AddUserClaim attaches a (type, value) claim to a user.
	AddUserClaim(ctx context.Context, userID string, c domain.Claim) error

	// UpdateSecurityStamp replaces the user's stamp and bumps updated_at.
	UpdateSecurityStamp(ctx context.Context, userID string, stamp string) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Roles interface {
	// GetRoleByName fetches a role by its name.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns all roles in the system.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// CreateRole inserts a new role (id is ULID).
	CreateRole(ctx context.Context, r domain.Role) error

	// IsEmpty returns true if there are no roles.
	IsEmpty(ctx context.Context) (bool, error)
}

type NamedTokens interface {
	// CreateNamedToken stores a token record. At most one record can exist
	// per (user, provider, name); a second insert fails with ErrAlreadyExists.
	CreateNamedToken(ctx context.Context, t domain.NamedToken) error

	// GetNamedToken returns the record for (user, provider, name).
	GetNamedToken(ctx context.Context, userID, provider, name string) (domain.NamedToken, error)

	// RemoveNamedToken deletes the record for (user, provider, name).
	// Removing a token that does not exist is not an error.
	RemoveNamedToken(ctx context.Context, userID, provider, name string) error

	// DeleteExpiredNamedTokens removes records past their expiry before the
	// given cutoff. Optional housekeeping.
	DeleteExpiredNamedTokens(ctx context.Context, before time.Time) error
}
