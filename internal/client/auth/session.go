package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ndmitry/pricetrack/internal/client/storage"
	"github.com/ndmitry/pricetrack/pkg/api"
)

// State представляет состояние сессии
type State int

// Состояния машины жизненного цикла токенов
const (
	// StateUnauthenticated - связки токенов нет
	StateUnauthenticated State = iota
	// StateTokenPresentUnverified - связка есть, срок действия еще не проверен
	StateTokenPresentUnverified
	// StateAuthenticated - access token есть и не истек
	StateAuthenticated
	// StateExpired - access token истек (или не декодируется)
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateTokenPresentUnverified:
		return "token present, unverified"
	case StateAuthenticated:
		return "authenticated"
	case StateExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// RefreshAPI defines the auth gateway operation the session manager needs
type RefreshAPI interface {
	RefreshToken(ctx context.Context, refreshToken string) (*api.Tokens, error)
}

// Manager отвечает за жизненный цикл токенов: проверка срока действия
// access токена, ротация через refresh, очистка связки при неудаче.
//
// Проверка check-then-refresh выполняется на холодном старте и после
// login/logout. Запросы к ресурсам используют сохраненный access token
// без повторной проверки срока действия - запрос ровно на границе
// истечения может один раз отказать выше по стеку, это приемлемо.
type Manager struct {
	store *TokenStore
	api   RefreshAPI
	sf    singleflight.Group
	now   func() time.Time
}

// NewManager создает новый менеджер сессии
func NewManager(store *TokenStore, refreshAPI RefreshAPI) *Manager {
	return &Manager{
		store: store,
		api:   refreshAPI,
		now:   time.Now,
	}
}

// State определяет текущее состояние по сохраненной связке, без сети
// Ошибка декодирования exp claim трактуется как StateExpired - связка
// не выбрасывается, ей дается шанс на refresh
func (m *Manager) State(ctx context.Context) (State, error) {
	access, err := m.store.AccessToken(ctx)
	if err != nil {
		return StateUnauthenticated, fmt.Errorf("failed to load access token: %w", err)
	}
	if access == "" {
		return StateUnauthenticated, nil
	}

	expiry, err := TokenExpiry(access)
	if err != nil {
		if errors.Is(err, ErrTokenDecode) {
			slog.Debug("access token payload undecodable, treating as expired", "error", err)
			return StateExpired, nil
		}
		return StateUnauthenticated, err
	}

	if expiry.After(m.now()) {
		return StateAuthenticated, nil
	}
	return StateExpired, nil
}

// EnsureAuthenticated приводит сессию к аутентифицированному состоянию,
// если это возможно: живой access token принимается без сети, истекший
// ротируется ровно одним refresh вызовом, провал refresh очищает связку.
//
// Конкурентные вызовы схлопываются в один: два параллельных refresh с
// одним refresh токеном - реальный риск, сервер мог бы отвергнуть второй
// как повторное использование. Возвращает true если сессия аутентифицирована.
func (m *Manager) EnsureAuthenticated(ctx context.Context) (bool, error) {
	result, err, _ := m.sf.Do("session", func() (interface{}, error) {
		return m.ensureAuthenticated(ctx)
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}

func (m *Manager) ensureAuthenticated(ctx context.Context) (bool, error) {
	state, err := m.State(ctx)
	if err != nil {
		return false, err
	}

	switch state {
	case StateAuthenticated:
		return true, nil
	case StateUnauthenticated:
		return false, nil
	case StateExpired:
		return m.refresh(ctx)
	default:
		return false, fmt.Errorf("unexpected session state: %s", state)
	}
}

// refresh выполняет одну попытку ротации связки
// Неудача (нет refresh токена или сервер отказал) - универсальный
// fallback: связка очищается, сессия становится неаутентифицированной
func (m *Manager) refresh(ctx context.Context) (bool, error) {
	refreshToken, err := m.store.RefreshToken(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to load refresh token: %w", err)
	}
	if refreshToken == "" {
		if err := m.store.Clear(ctx); err != nil {
			return false, fmt.Errorf("failed to clear tokens: %w", err)
		}
		return false, nil
	}

	tokens, err := m.api.RefreshToken(ctx, refreshToken)
	if err != nil {
		slog.Debug("token refresh rejected, clearing credentials", "error", err)
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			return false, fmt.Errorf("failed to clear tokens after refresh failure: %w", clearErr)
		}
		return false, nil
	}

	// Сохраняем ротированную связку как одно целое
	bundle := &Bundle{
		AccessToken:  tokens.AccessToken,
		IDToken:      tokens.IDToken,
		RefreshToken: tokens.RefreshToken,
	}
	if err := m.store.Store(ctx, bundle); err != nil {
		return false, fmt.Errorf("failed to persist rotated tokens: %w", err)
	}

	return true, nil
}

// Store возвращает token store менеджера
func (m *Manager) Store() *TokenStore {
	return m.store
}

// HasBundle сообщает, есть ли в хранилище хоть что-то от связки
func (m *Manager) HasBundle(ctx context.Context) (bool, error) {
	_, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
