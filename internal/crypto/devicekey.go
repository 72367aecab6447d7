package crypto

import (
	"crypto/rand"
	"fmt"
	"os"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id для деривации ключа хранилища
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
	// DeviceSecretSize - размер device secret в байтах
	DeviceSecretSize = 32
)

// storeKeyContext - доменная константа, отделяющая ключ хранилища токенов
// от любых других ключей, которые могли бы деривироваться из того же секрета
var storeKeyContext = []byte("pricetrack/token-store/v1")

// LoadOrCreateDeviceSecret возвращает device secret из файла path,
// создавая новый случайный секрет при первом запуске.
// Файл создается с правами 0600 - это локальный аналог platform keychain.
func LoadOrCreateDeviceSecret(path string) ([]byte, error) {
	secret, err := os.ReadFile(path)
	if err == nil {
		if len(secret) != DeviceSecretSize {
			return nil, fmt.Errorf("device secret file %s is corrupted: expected %d bytes, got %d",
				path, DeviceSecretSize, len(secret))
		}
		return secret, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read device secret: %w", err)
	}

	// Первый запуск - генерируем новый секрет
	secret = make([]byte, DeviceSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate device secret: %w", err)
	}

	if err := os.WriteFile(path, secret, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write device secret: %w", err)
	}

	return secret, nil
}

// DeriveStoreKey деривирует ключ шифрования хранилища токенов из device secret
// Argon2id с доменной солью; результат - 32 bytes для AES-256-GCM
func DeriveStoreKey(deviceSecret []byte) ([]byte, error) {
	if len(deviceSecret) != DeviceSecretSize {
		return nil, fmt.Errorf("device secret must be %d bytes, got %d", DeviceSecretSize, len(deviceSecret))
	}
	key := argon2.IDKey(deviceSecret, storeKeyContext, Argon2Time, Argon2Memory, Argon2Threads, KeySize)
	return key, nil
}
