package api

// HeaderIfUnmodifiedSince несёт server timestamp, на котором основан пакет выгрузки.
// Если коллекция изменилась позже, сервер отвечает 412 Precondition Failed.
const HeaderIfUnmodifiedSince = "X-If-Unmodified-Since"

// ServerPayload представляет одну запись коллекции на сервере.
// Data - JSON объект расширения, сериализованный в строку.
// Отсутствие Data или Deleted == true означают tombstone.
type ServerPayload struct {
	Data         *string         `json:"data,omitempty"` // JSON объект в виде текста, nil для tombstone
	GUID         string          `json:"guid"`           // стабильный sync идентификатор
	ExtID        string          `json:"ext_id"`         // идентификатор расширения
	LastModified ServerTimestamp `json:"last_modified"`  // время изменения на сервере
	Deleted      bool            `json:"deleted"`        // флаг удаления
}

// IsTombstone reports whether the payload represents a remote deletion.
func (p ServerPayload) IsTombstone() bool {
	return p.Deleted || p.Data == nil
}

// GetRecordsResponse представляет ответ сервера со списком изменённых записей
type GetRecordsResponse struct {
	Records      []ServerPayload `json:"records"`
	LastModified ServerTimestamp `json:"last_modified"` // время последнего изменения коллекции
}

// PostRecordsRequest представляет пакет записей для загрузки на сервер
type PostRecordsRequest struct {
	Records []ServerPayload `json:"records"`
}

// PostRecordsResponse представляет результат загрузки пакета
type PostRecordsResponse struct {
	Failed       map[string]string `json:"failed,omitempty"` // guid -> причина отказа
	Success      []string          `json:"success"`          // guid принятых записей
	LastModified ServerTimestamp   `json:"last_modified"`    // серверное время принятия пакета
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
