package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ndmitry/pricetrack/internal/client/storage"
	"github.com/ndmitry/pricetrack/internal/crypto"
)

// Bundle представляет связку токенов в памяти (plaintext)
// Отсутствующее поле - пустая строка; частичная связка валидна
type Bundle struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
}

// TokenStore provides the encryption layer between business logic and
// storage. It encrypts tokens before saving and decrypts them when
// retrieving: plaintext above this layer, ciphertext below.
type TokenStore struct {
	storage storage.TokenStorage
	key     []byte
}

// NewTokenStore creates a new TokenStore with encryption layer
// key must be exactly 32 bytes (derived from the device secret)
func NewTokenStore(tokenStorage storage.TokenStorage, key []byte) *TokenStore {
	if len(key) != crypto.KeySize {
		panic(fmt.Sprintf("token store key must be %d bytes, got %d", crypto.KeySize, len(key)))
	}
	return &TokenStore{
		storage: tokenStorage,
		key:     key,
	}
}

// Store шифрует и сохраняет связку токенов
// Присутствующие поля пишутся одной транзакцией (связка ротируется как целое)
func (s *TokenStore) Store(ctx context.Context, bundle *Bundle) error {
	if bundle == nil {
		return fmt.Errorf("token bundle is nil")
	}

	encrypted := make(map[string][]byte, 3)
	fields := map[string]string{
		storage.KeyAccessToken:  bundle.AccessToken,
		storage.KeyIDToken:      bundle.IDToken,
		storage.KeyRefreshToken: bundle.RefreshToken,
	}

	for name, value := range fields {
		if value == "" {
			continue
		}
		ciphertext, err := crypto.Encrypt([]byte(value), s.key)
		if err != nil {
			return fmt.Errorf("failed to encrypt %s: %w", name, err)
		}
		encrypted[name] = ciphertext
	}

	if len(encrypted) == 0 {
		return fmt.Errorf("token bundle is empty")
	}

	return s.storage.SaveTokens(ctx, encrypted)
}

// Load загружает и расшифровывает всю связку
// Отсутствующие поля возвращаются пустыми; если отсутствуют все три -
// storage.ErrTokenNotFound
func (s *TokenStore) Load(ctx context.Context) (*Bundle, error) {
	bundle := &Bundle{}
	found := false

	for name, target := range map[string]*string{
		storage.KeyAccessToken:  &bundle.AccessToken,
		storage.KeyIDToken:      &bundle.IDToken,
		storage.KeyRefreshToken: &bundle.RefreshToken,
	} {
		value, err := s.loadField(ctx, name)
		if err != nil {
			return nil, err
		}
		if value != "" {
			found = true
		}
		*target = value
	}

	if !found {
		return nil, storage.ErrTokenNotFound
	}
	return bundle, nil
}

// AccessToken возвращает расшифрованный access token
// Отсутствующий токен - пустая строка без ошибки
func (s *TokenStore) AccessToken(ctx context.Context) (string, error) {
	return s.loadField(ctx, storage.KeyAccessToken)
}

// IDToken возвращает расшифрованный id token
func (s *TokenStore) IDToken(ctx context.Context) (string, error) {
	return s.loadField(ctx, storage.KeyIDToken)
}

// RefreshToken возвращает расшифрованный refresh token
func (s *TokenStore) RefreshToken(ctx context.Context) (string, error) {
	return s.loadField(ctx, storage.KeyRefreshToken)
}

// Clear удаляет всю связку; идемпотентна
func (s *TokenStore) Clear(ctx context.Context) error {
	return s.storage.DeleteTokens(ctx)
}

// loadField загружает и расшифровывает одно поле
func (s *TokenStore) loadField(ctx context.Context, name string) (string, error) {
	ciphertext, err := s.storage.GetToken(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load %s: %w", name, err)
	}

	plaintext, err := crypto.Decrypt(ciphertext, s.key)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt %s: %w", name, err)
	}

	return string(plaintext), nil
}
