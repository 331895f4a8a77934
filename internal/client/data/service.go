package data

import (
	"context"
	"fmt"

	"github.com/iudanet/extstorage/internal/client/storage"
	"github.com/iudanet/extstorage/internal/models"
	"github.com/iudanet/extstorage/internal/validation"
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс для клиентского data сервиса
type Service interface {
	// Set разбирает JSON объект и сливает его с данными расширения
	Set(ctx context.Context, extID, rawJSON string) error
	// Get возвращает данные расширения, либо только указанные ключи
	Get(ctx context.Context, extID string, keys []string) (models.JSONMap, error)
	// Remove удаляет ключи из данных расширения
	Remove(ctx context.Context, extID string, keys []string) error
	// Clear удаляет все данные расширения
	Clear(ctx context.Context, extID string) error
	// BytesInUse возвращает размер сохранённых данных расширения
	BytesInUse(ctx context.Context, extID string) (int64, error)
}

// service validates input before it reaches the record store
type service struct {
	kv storage.KeyValueStorage
}

// NewService creates a new data service
func NewService(kv storage.KeyValueStorage) Service {
	return &service{
		kv: kv,
	}
}

// Set parses rawJSON as an object and merges it into the extension data
func (s *service) Set(ctx context.Context, extID, rawJSON string) error {
	if err := validation.ValidateExtensionID(extID); err != nil {
		return err
	}

	values, err := models.ParseJSONMap(rawJSON)
	if err != nil {
		return fmt.Errorf("invalid value: %w", err)
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	if err := validation.ValidateKeys(keys); err != nil {
		return err
	}

	if err := s.kv.Set(ctx, extID, values); err != nil {
		return fmt.Errorf("failed to set data for %s: %w", extID, err)
	}
	return nil
}

// Get returns the extension data, or only the requested keys
func (s *service) Get(ctx context.Context, extID string, keys []string) (models.JSONMap, error) {
	if err := validation.ValidateExtensionID(extID); err != nil {
		return nil, err
	}
	if err := validation.ValidateKeys(keys); err != nil {
		return nil, err
	}

	data, err := s.kv.Get(ctx, extID, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to get data for %s: %w", extID, err)
	}
	return data, nil
}

// Remove deletes keys from the extension data
func (s *service) Remove(ctx context.Context, extID string, keys []string) error {
	if err := validation.ValidateExtensionID(extID); err != nil {
		return err
	}
	if len(keys) == 0 {
		return fmt.Errorf("at least one key is required")
	}
	if err := validation.ValidateKeys(keys); err != nil {
		return err
	}

	if err := s.kv.Remove(ctx, extID, keys); err != nil {
		return fmt.Errorf("failed to remove keys for %s: %w", extID, err)
	}
	return nil
}

// Clear removes all data of the extension
func (s *service) Clear(ctx context.Context, extID string) error {
	if err := validation.ValidateExtensionID(extID); err != nil {
		return err
	}

	if err := s.kv.Clear(ctx, extID); err != nil {
		return fmt.Errorf("failed to clear data for %s: %w", extID, err)
	}
	return nil
}

// BytesInUse returns the size of the stored extension data
func (s *service) BytesInUse(ctx context.Context, extID string) (int64, error) {
	if err := validation.ValidateExtensionID(extID); err != nil {
		return 0, err
	}

	n, err := s.kv.GetBytesInUse(ctx, extID)
	if err != nil {
		return 0, fmt.Errorf("failed to get bytes in use for %s: %w", extID, err)
	}
	return n, nil
}
