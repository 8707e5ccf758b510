package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/hotellisting/hotellisting/internal/auth/domain"
	"github.com/hotellisting/hotellisting/internal/auth/store"
	"github.com/hotellisting/hotellisting/pkg/cryptox"
	"github.com/hotellisting/hotellisting/pkg/idx"
	"github.com/hotellisting/hotellisting/pkg/slogx"
)

const (
	// TokenProvider namespaces our token records in the named_tokens table.
	TokenProvider = "HotelListingApi"

	// RefreshTokenName is the record name for the per-user refresh token.
	RefreshTokenName = "RefreshToken"
)

var ErrInvalidRefresh = errors.New("invalid_refresh_token")

// RefreshTokenService manages the per-user opaque refresh token. Each user
// holds at most one live refresh token at a time; issuing replaces any
// previous one.
type RefreshTokenService struct {
	Store store.Store
	TTL   time.Duration
}

// Issue mints a fresh opaque refresh token for the user, replacing any
// existing record. The raw token goes to the caller; only its fingerprint
// is stored.
func (s *RefreshTokenService) Issue(ctx context.Context, user domain.User) (string, error) {
	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	record := domain.NamedToken{
		ID:            idx.New().String(),
		UserID:        user.ID,
		Provider:      TokenProvider,
		Name:          RefreshTokenName,
		TokenHash:     cryptox.FingerprintToken(opaque),
		SecurityStamp: user.SecurityStamp,
		ExpiresAt:     time.Now().Add(s.TTL),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.NamedTokens().RemoveNamedToken(ctx, user.ID, TokenProvider, RefreshTokenName); err != nil {
			return err
		}
		return tx.NamedTokens().CreateNamedToken(ctx, record)
	})
	if err != nil {
		return "", err
	}

	return opaque, nil
}

// VerifyAndRotate checks the presented refresh token against the stored
// record and, when valid, atomically replaces it with a fresh one. A failed
// verification rotates the user's security stamp so anything bound to the
// old stamp stops validating.
//
// The whole check-and-swap runs in one transaction, so of any number of
// concurrent calls presenting the same token exactly one wins; the losers
// get ErrInvalidRefresh without disturbing the winner's new token.
func (s *RefreshTokenService) VerifyAndRotate(ctx context.Context, user domain.User, presented string) (string, error) {
	l := slogx.FromContext(ctx)
	now := time.Now()

	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", err
	}

	presentedFP := cryptox.FingerprintToken(presented)

	var denied bool
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		record, err := tx.NamedTokens().GetNamedToken(ctx, user.ID, TokenProvider, RefreshTokenName)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				denied = true
				return bumpSecurityStamp(ctx, tx, user.ID)
			}
			return err
		}

		match := subtle.ConstantTimeCompare([]byte(record.TokenHash), []byte(presentedFP)) == 1
		if !match || now.After(record.ExpiresAt) {
			denied = true
			return bumpSecurityStamp(ctx, tx, user.ID)
		}

		if err := tx.NamedTokens().RemoveNamedToken(ctx, user.ID, TokenProvider, RefreshTokenName); err != nil {
			return err
		}
		return tx.NamedTokens().CreateNamedToken(ctx, domain.NamedToken{
			ID:            idx.New().String(),
			UserID:        user.ID,
			Provider:      TokenProvider,
			Name:          RefreshTokenName,
			TokenHash:     cryptox.FingerprintToken(opaque),
			SecurityStamp: user.SecurityStamp,
			ExpiresAt:     now.Add(s.TTL),
		})
	})
	if err != nil {
		return "", err
	}
	if denied {
		l.Info("refresh token verification failed, security stamp rotated",
			slog.String("user_id", user.ID))
		return "", ErrInvalidRefresh
	}

	return opaque, nil
}

// bumpSecurityStamp is returned as a nil error from inside WithTx so the
// stamp rotation commits even though the refresh itself is being denied.
func bumpSecurityStamp(ctx context.Context, tx store.Tx, userID string) error {
	err := tx.Users().UpdateSecurityStamp(ctx, userID, idx.New().String())
	if errors.Is(err, store.ErrNotFound) {
		return nil // user vanished underneath us; denial already decided
	}
	return err
}
