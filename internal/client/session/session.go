// Package session собирает слои авторизации в один явно конструируемый
// объект сессии. Порядок инициализации фиксирован: storage -> token
// store -> session manager -> Session; никакого глобального состояния.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ndmitry/pricetrack/internal/client/auth"
	"github.com/ndmitry/pricetrack/internal/client/cache"
	"github.com/ndmitry/pricetrack/internal/validation"
	"github.com/ndmitry/pricetrack/pkg/api"
)

// userStaleFor - идентичность пользователя не устаревает сама по себе,
// только явная инвалидация при login/logout
const userStaleFor = time.Duration(math.MaxInt64)

// AuthAPI defines the auth gateway operations the session needs
type AuthAPI interface {
	SignIn(ctx context.Context, username, password string) (*api.SignInResponse, error)
	FetchCurrentUser(ctx context.Context, accessToken string) (*api.UserInfo, error)
}

// Session представляет сессию пользователя процесса
type Session struct {
	api      AuthAPI
	manager  *auth.Manager
	store    *auth.TokenStore
	cache    *cache.Cache
	userOpts cache.Options
}

// New создает новую сессию поверх собранного менеджера
func New(authAPI AuthAPI, manager *auth.Manager, c *cache.Cache) *Session {
	return &Session{
		api:     authAPI,
		manager: manager,
		store:   manager.Store(),
		cache:   c,
		userOpts: cache.Options{
			StaleFor: userStaleFor,
			// ExpireAfter 0 - запись живет до явной инвалидации
		},
	}
}

// Login выполняет вход и сохраняет полученную связку токенов
// Неудачный вход очищает хранилище - клиент никогда не держит связку,
// которую не смог подтвердить
func (s *Session) Login(ctx context.Context, username, password string) (*api.UserInfo, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.api.SignIn(ctx, username, password)
	if err != nil {
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			slog.Warn("failed to clear tokens after sign-in failure", "error", clearErr)
		}
		s.cache.Invalidate(cache.UserPrefix())
		return nil, err
	}

	bundle := &auth.Bundle{
		AccessToken:  resp.Tokens.AccessToken,
		IDToken:      resp.Tokens.IDToken,
		RefreshToken: resp.Tokens.RefreshToken,
	}
	if err := s.store.Store(ctx, bundle); err != nil {
		return nil, fmt.Errorf("failed to persist tokens: %w", err)
	}

	// Новые токены - заново читаем идентичность пользователя
	s.cache.Invalidate(cache.UserPrefix())

	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Logout завершает сессию: очищает хранилище токенов и кеш
// Единственный путь, который делает и то и другое; идемпотентен
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	s.cache.Purge()
	return nil
}

// CurrentUser возвращает идентичность текущего пользователя через кеш
func (s *Session) CurrentUser(ctx context.Context) (*api.UserInfo, error) {
	data, err := s.cache.Read(ctx, cache.UserKey(), s.userOpts, func(ctx context.Context) (interface{}, error) {
		token, err := s.store.AccessToken(ctx)
		if err != nil {
			return nil, err
		}
		return s.api.FetchCurrentUser(ctx, token)
	})
	if err != nil {
		return nil, err
	}
	return data.(*api.UserInfo), nil
}

// IsAuthenticated сообщает, аутентифицирована ли сессия
// true только когда есть живой (или успешно ротированный) access token
// И сервер подтвердил пользователя
func (s *Session) IsAuthenticated(ctx context.Context) (bool, error) {
	ok, err := s.manager.EnsureAuthenticated(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if _, err := s.CurrentUser(ctx); err != nil {
		slog.Debug("user fetch failed, session not authenticated", "error", err)
		return false, nil
	}
	return true, nil
}

// State возвращает состояние машины жизненного цикла токенов
func (s *Session) State(ctx context.Context) (auth.State, error) {
	return s.manager.State(ctx)
}
