package validation

import (
	"fmt"
	"regexp"
	"unicode"
	"unicode/utf8"
)

// ExtensionIDPattern определяет допустимый формат идентификатора расширения
// Латинские буквы, цифры и символы . _ - @ { } (например "addon@example.com" или "{uuid}")
var ExtensionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._@{}\-]+$`)

const (
	// MaxExtensionIDLen максимальная длина идентификатора расширения
	MaxExtensionIDLen = 255
	// MaxKeyLen максимальная длина ключа
	MaxKeyLen = 1024
)

// ValidateExtensionID проверяет, что идентификатор расширения соответствует требованиям
func ValidateExtensionID(extID string) error {
	if extID == "" {
		return fmt.Errorf("extension id cannot be empty")
	}

	if len(extID) > MaxExtensionIDLen {
		return fmt.Errorf("extension id must not exceed %d characters", MaxExtensionIDLen)
	}

	if !ExtensionIDPattern.MatchString(extID) {
		return fmt.Errorf("extension id can only contain letters, numbers and . _ - @ { }")
	}

	return nil
}

// ValidateKey проверяет ключ внутри объекта расширения
// Ключ может быть любой непустой UTF-8 строкой без управляющих символов
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if len(key) > MaxKeyLen {
		return fmt.Errorf("key must not exceed %d bytes", MaxKeyLen)
	}

	if !utf8.ValidString(key) {
		return fmt.Errorf("key must be valid UTF-8")
	}

	for _, r := range key {
		if unicode.IsControl(r) {
			return fmt.Errorf("key must not contain control characters")
		}
	}

	return nil
}

// ValidateKeys проверяет список ключей
func ValidateKeys(keys []string) error {
	for _, key := range keys {
		if err := ValidateKey(key); err != nil {
			return fmt.Errorf("invalid key %q: %w", key, err)
		}
	}
	return nil
}
