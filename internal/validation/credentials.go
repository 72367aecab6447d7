package validation

import (
	"fmt"
	"regexp"
)

// UsernamePattern определяет допустимый формат username
// Латинские буквы (a-z, A-Z), цифры (0-9), точка, дефис, нижнее подчеркивание
var UsernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// MaxUsernameLen максимальная длина username
const MaxUsernameLen = 64

// ValidateUsername проверяет, что username соответствует требованиям
// Минимальной длины нет - правила сложности устанавливает сервер
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", MaxUsernameLen)
	}

	if !UsernamePattern.MatchString(username) {
		return fmt.Errorf("username can only contain letters (a-z, A-Z), numbers (0-9), dots, dashes and underscores")
	}

	return nil
}

// ValidatePassword проверяет, что пароль задан
// Правила сложности устанавливает сервер при sign-in
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	return nil
}
