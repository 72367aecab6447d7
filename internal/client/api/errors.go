package api

import (
	"errors"
	"fmt"
)

// Ошибки уровня шлюза
var (
	// ErrInvalidCredentials - сервер отклонил пару username/password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated - запрос пользователя без access токена,
	// проверяется до обращения к сети
	ErrUnauthenticated = errors.New("not authenticated: no access token")

	// ErrRefreshFailed - сервер отклонил refresh токен
	ErrRefreshFailed = errors.New("token refresh failed")
)

// RequestError представляет non-2xx ответ на операцию с продуктами
// Несет имя операции и человекочитаемое сообщение сервера
type RequestError struct {
	Op         string // имя операции, например "list products"
	Message    string // сообщение сервера (или тело ответа)
	StatusCode int
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failed (%d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
}
