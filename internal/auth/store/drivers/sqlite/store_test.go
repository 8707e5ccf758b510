package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotellisting/hotellisting/internal/auth/domain"
	"github.com/hotellisting/hotellisting/internal/auth/store"
	"github.com/hotellisting/hotellisting/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestUser(t *testing.T, s *Store, email string) domain.User {
	t.Helper()

	u := domain.User{
		ID:            idx.New().String(),
		Email:         email,
		FirstName:     "Test",
		LastName:      "User",
		PasswordHash:  "$argon2id$fake",
		SecurityStamp: idx.New().String(),
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsers_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, s, "alice@example.com")

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
	assert.Equal(t, u.SecurityStamp, got.SecurityStamp)
	assert.False(t, got.CreatedAt.IsZero())

	got, err = s.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	// email lookup is case-insensitive
	got, err = s.Users().GetUserByEmail(ctx, "ALICE@EXAMPLE.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Users().GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsers_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	newTestUser(t, s, "alice@example.com")

	err := s.Users().CreateUser(ctx, domain.User{
		ID:            idx.New().String(),
		Email:         "Alice@Example.com", // same address, different casing
		PasswordHash:  "$argon2id$fake",
		SecurityStamp: idx.New().String(),
	})
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUsers_RolesAndClaims(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, s, "alice@example.com")

	roles, err := s.Users().ListUserRoles(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, roles)

	require.NoError(t, s.Users().AddUserToRole(ctx, u.ID, domain.RoleUser))
	// Granting twice is fine.
	require.NoError(t, s.Users().AddUserToRole(ctx, u.ID, domain.RoleUser))

	err = s.Users().AddUserToRole(ctx, u.ID, "NoSuchRole")
	assert.ErrorIs(t, err, store.ErrNotFound)

	roles, err = s.Users().ListUserRoles(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.RoleUser}, roles)

	require.NoError(t, s.Users().AddUserClaim(ctx, u.ID, domain.Claim{Type: "tier", Value: "gold"}))
	claims, err := s.Users().ListUserClaims(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []domain.Claim{{Type: "tier", Value: "gold"}}, claims)
}

func TestUsers_UpdateSecurityStamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, s, "alice@example.com")

	next := idx.New().String()
	require.NoError(t, s.Users().UpdateSecurityStamp(ctx, u.ID, next))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, next, got.SecurityStamp)

	err = s.Users().UpdateSecurityStamp(ctx, idx.New().String(), next)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRoles_Seeded(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.Roles().IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	admin, err := s.Roles().GetRoleByName(ctx, domain.RoleAdministrator)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdministrator, admin.Name)

	user, err := s.Roles().GetRoleByName(ctx, domain.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Name)

	all, err := s.Roles().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNamedTokens_Lifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, s, "alice@example.com")

	tok := domain.NamedToken{
		ID:            idx.New().String(),
		UserID:        u.ID,
		Provider:      "HotelListingApi",
		Name:          "RefreshToken",
		TokenHash:     "fingerprint-1",
		SecurityStamp: u.SecurityStamp,
		ExpiresAt:     time.Now().Add(time.Hour),
	}
	require.NoError(t, s.NamedTokens().CreateNamedToken(ctx, tok))

	// Only one token per (user, provider, name).
	dup := tok
	dup.ID = idx.New().String()
	dup.TokenHash = "fingerprint-2"
	err := s.NamedTokens().CreateNamedToken(ctx, dup)
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	got, err := s.NamedTokens().GetNamedToken(ctx, u.ID, "HotelListingApi", "RefreshToken")
	require.NoError(t, err)
	assert.Equal(t, "fingerprint-1", got.TokenHash)
	assert.True(t, got.ExpiresAt.After(time.Now()))

	require.NoError(t, s.NamedTokens().RemoveNamedToken(ctx, u.ID, "HotelListingApi", "RefreshToken"))

	_, err = s.NamedTokens().GetNamedToken(ctx, u.ID, "HotelListingApi", "RefreshToken")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Removing again is not an error.
	require.NoError(t, s.NamedTokens().RemoveNamedToken(ctx, u.ID, "HotelListingApi", "RefreshToken"))
}

func TestNamedTokens_DeleteExpired(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser(t, s, "alice@example.com")

	expired := domain.NamedToken{
		ID:            idx.New().String(),
		UserID:        u.ID,
		Provider:      "HotelListingApi",
		Name:          "RefreshToken",
		TokenHash:     "fingerprint",
		SecurityStamp: u.SecurityStamp,
		ExpiresAt:     time.Now().Add(-time.Hour),
	}
	require.NoError(t, s.NamedTokens().CreateNamedToken(ctx, expired))

	require.NoError(t, s.NamedTokens().DeleteExpiredNamedTokens(ctx, time.Now()))

	_, err := s.NamedTokens().GetNamedToken(ctx, u.ID, "HotelListingApi", "RefreshToken")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, domain.User{
			ID:            idx.New().String(),
			Email:         "tx@example.com",
			PasswordHash:  "$argon2id$fake",
			SecurityStamp: idx.New().String(),
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByEmail(ctx, "tx@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTx_Commit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, domain.User{
			ID:            idx.New().String(),
			Email:         "tx@example.com",
			PasswordHash:  "$argon2id$fake",
			SecurityStamp: idx.New().String(),
		})
	})
	require.NoError(t, err)

	_, err = s.Users().GetUserByEmail(ctx, "tx@example.com")
	require.NoError(t, err)
}
