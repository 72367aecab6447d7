package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenDecode - payload access токена не удалось разобрать
// Для машины состояний такой токен эквивалентен истекшему
var ErrTokenDecode = errors.New("failed to decode token payload")

// TokenExpiry декодирует exp claim access токена без проверки подписи
// Клиент доверяет содержимому токена - его проверяет сервер, нам нужен
// только срок действия для решения о refresh
func TokenExpiry(token string) (time.Time, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrTokenDecode, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("%w: missing exp claim", ErrTokenDecode)
	}

	return exp.Time, nil
}
