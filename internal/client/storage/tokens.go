package storage

import "context"

// Фиксированные имена полей хранилища токенов
// Совпадают с ключами secure store мобильного клиента - менять нельзя
const (
	KeyAccessToken  = "accessToken"
	KeyIDToken      = "idToken"
	KeyRefreshToken = "refreshToken"
)

// TokenStorage defines the lowest storage layer for credential strings.
// It works with raw values (already encrypted ciphertext) and doesn't
// perform any encryption/decryption itself.
//
// A partial bundle (some fields present, some absent) is a valid state:
// absent fields surface as ErrTokenNotFound, never as a panic.
type TokenStorage interface {
	// SaveTokens stores the given fields in a single transaction.
	// Existing fields not named in tokens are left untouched.
	SaveTokens(ctx context.Context, tokens map[string][]byte) error

	// SaveToken stores a single field, overwriting any previous value.
	SaveToken(ctx context.Context, name string, value []byte) error

	// GetToken retrieves one stored field as-is.
	// Returns ErrTokenNotFound if the field is absent.
	GetToken(ctx context.Context, name string) ([]byte, error)

	// DeleteTokens removes all stored fields (logout).
	// Deleting an already empty store is not an error.
	DeleteTokens(ctx context.Context) error
}
