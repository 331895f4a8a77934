package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/iudanet/extstorage/internal/models"
	"github.com/iudanet/extstorage/internal/server/storage"
	"github.com/iudanet/extstorage/internal/validation"
	"github.com/iudanet/extstorage/pkg/api"
)

// MaxRequestBodySize ограничивает размер тела POST запроса
const MaxRequestBodySize = 10 << 20

// RecordsHandler handles the record collection endpoint
type RecordsHandler struct {
	logger  *slog.Logger
	storage storage.RecordStorage
	now     func() time.Time
}

// NewRecordsHandler creates a new records handler
func NewRecordsHandler(logger *slog.Logger, storage storage.RecordStorage) *RecordsHandler {
	return &RecordsHandler{
		logger:  logger,
		storage: storage,
		now:     time.Now,
	}
}

// HandleRecords обрабатывает GET и POST /api/v1/storage/records
func (h *RecordsHandler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	// user_id установлен AuthMiddleware
	userID, ok := GetUserID(r.Context())
	if !ok {
		h.logger.Error("User ID not found in context")
		WriteError(w, h.logger, http.StatusUnauthorized, "missing user")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, userID)
	case http.MethodPost:
		h.handlePost(w, r, userID)
	default:
		WriteError(w, h.logger, http.StatusMethodNotAllowed, "only GET and POST are supported")
	}
}

// handleGet обрабатывает GET ?newer=<seconds>
func (h *RecordsHandler) handleGet(w http.ResponseWriter, r *http.Request, userID string) {
	since, err := parseNewer(r.URL.Query().Get("newer"))
	if err != nil {
		h.logger.Warn("Invalid newer parameter", "newer", r.URL.Query().Get("newer"), "error", err)
		WriteError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	records, lastModified, err := h.storage.GetRecordsSince(r.Context(), userID, since)
	if err != nil {
		h.logger.Error("Failed to get records", "error", err, "user_id", userID)
		WriteError(w, h.logger, http.StatusInternalServerError, "failed to get records")
		return
	}

	h.logger.Debug("GET records", "user_id", userID, "since", since.String(), "count", len(records))

	WriteJSON(w, h.logger, http.StatusOK, api.GetRecordsResponse{
		Records:      records,
		LastModified: lastModified,
	})
}

// handlePost обрабатывает POST с пакетом записей
func (h *RecordsHandler) handlePost(w http.ResponseWriter, r *http.Request, userID string) {
	ifUnmodifiedSince, err := parseUnmodifiedSince(r.Header.Get(api.HeaderIfUnmodifiedSince))
	if err != nil {
		h.logger.Warn("Invalid precondition header", "error", err)
		WriteError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req api.PostRecordsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode request body", "error", err)
		WriteError(w, h.logger, http.StatusBadRequest, "invalid request body")
		return
	}

	failed := make(map[string]string)
	valid := make([]api.ServerPayload, 0, len(req.Records))
	for _, p := range req.Records {
		if err := validatePayload(p); err != nil {
			failed[p.GUID] = err.Error()
			continue
		}
		if p.IsTombstone() {
			p.Data = nil
			p.Deleted = true
		}
		valid = append(valid, p)
	}

	result, err := h.storage.PutRecords(r.Context(), userID, valid, h.now().UnixMilli(), ifUnmodifiedSince)
	if errors.Is(err, storage.ErrCollectionModified) {
		h.logger.Info("Collection modified since client read", "user_id", userID)
		WriteError(w, h.logger, http.StatusPreconditionFailed, "collection was modified, fetch new records and retry")
		return
	}
	if err != nil {
		h.logger.Error("Failed to store records", "error", err, "user_id", userID)
		WriteError(w, h.logger, http.StatusInternalServerError, "failed to store records")
		return
	}

	for guid, reason := range result.Failed {
		failed[guid] = reason
	}

	h.logger.Info("POST records",
		"user_id", userID,
		"accepted", len(result.Success),
		"failed", len(failed),
		"last_modified", result.LastModified.String(),
	)

	resp := api.PostRecordsResponse{
		Success:      result.Success,
		LastModified: result.LastModified,
	}
	if len(failed) > 0 {
		resp.Failed = failed
	}
	WriteJSON(w, h.logger, http.StatusOK, resp)
}

func parseNewer(s string) (api.ServerTimestamp, error) {
	if s == "" {
		return 0, nil
	}
	return parseSeconds("newer", s)
}

// parseUnmodifiedSince возвращает nil, если заголовок не передан
func parseUnmodifiedSince(s string) (*api.ServerTimestamp, error) {
	if s == "" {
		return nil, nil
	}
	ts, err := parseSeconds(api.HeaderIfUnmodifiedSince, s)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func parseSeconds(name, s string) (api.ServerTimestamp, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s value %q", name, s)
	}
	if f < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return api.ServerTimestampFromFloatSeconds(f), nil
}

func validatePayload(p api.ServerPayload) error {
	if p.GUID == "" {
		return errors.New("guid is required")
	}
	if err := validation.ValidateExtensionID(p.ExtID); err != nil {
		return err
	}
	if p.IsTombstone() {
		return nil
	}
	if _, err := models.ParseJSONMap(*p.Data); err != nil {
		return fmt.Errorf("invalid data: %w", err)
	}
	return nil
}
