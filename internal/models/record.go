package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// JSONMap is the decoded JSON object stored for an extension.
// A nil JSONMap means "no data" (tombstone or never written).
type JSONMap map[string]any

// ErrNotJSONObject is returned when valid JSON is not an object.
var ErrNotJSONObject = errors.New("json value is not an object")

// ParseJSONMap decodes s into a JSONMap. Anything other than a JSON object
// is rejected.
func ParseJSONMap(s string) (JSONMap, error) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotJSONObject
	}
	return JSONMap(m), nil
}

// Text encodes the map to the textual form stored in the database and sent
// to the server. Keys are emitted in sorted order.
func (m JSONMap) Text() (string, error) {
	if m == nil {
		m = JSONMap{}
	}
	b, err := json.Marshal(map[string]any(m))
	if err != nil {
		return "", fmt.Errorf("failed to encode json: %w", err)
	}
	return string(b), nil
}

// Clone returns a shallow copy of the map. Nil stays nil.
func (m JSONMap) Clone() JSONMap {
	if m == nil {
		return nil
	}
	out := make(JSONMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// SyncStatus отслеживает, была ли запись хоть раз синхронизирована с сервером.
type SyncStatus int

const (
	// SyncStatusNormal - запись уже известна серверу
	SyncStatusNormal SyncStatus = 1
	// SyncStatusNew - запись ещё ни разу не синхронизировалась
	SyncStatusNew SyncStatus = 2
)

// String returns a human readable status name.
func (s SyncStatus) String() string {
	switch s {
	case SyncStatusNormal:
		return "normal"
	case SyncStatusNew:
		return "new"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// LocalRecord представляет локальные данные расширения.
type LocalRecord struct {
	Data          JSONMap    // Data объект данных, nil означает tombstone
	ExtID         string     // ExtID идентификатор расширения (уникальный)
	SyncStatus    SyncStatus // SyncStatus состояние синхронизации
	ChangeCounter int64      // ChangeCounter число локальных изменений после последней загрузки
}

// MirrorRecord представляет последнее известное клиенту состояние записи на сервере.
type MirrorRecord struct {
	Data           JSONMap // Data данные на сервере, nil означает серверный tombstone
	GUID           string  // GUID стабильный sync идентификатор
	ExtID          string  // ExtID идентификатор расширения
	ServerModified int64   // ServerModified серверное время в миллисекундах
}
