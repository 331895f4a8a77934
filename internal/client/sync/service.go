package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/extstorage/internal/client/storage"
	"github.com/iudanet/extstorage/internal/interrupt"
	"github.com/iudanet/extstorage/pkg/api"
)

//go:generate moq -out apiclient_mock.go . APIClient

// APIClient is the transport used to exchange records with the server
type APIClient interface {
	// GetRecords returns records changed on the server after since
	GetRecords(ctx context.Context, since api.ServerTimestamp) (*api.GetRecordsResponse, error)

	// PostRecords uploads records and reports which of them were accepted.
	// The batch is refused when the collection changed after unmodifiedSince.
	PostRecords(ctx context.Context, records []api.ServerPayload, unmodifiedSince api.ServerTimestamp) (*api.PostRecordsResponse, error)
}

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс для sync.Service
type Service interface {
	// Sync выполняет полный проход синхронизации с сервером
	Sync(ctx context.Context) (*SyncResult, error)

	// GetPendingSyncCount возвращает количество записей, ожидающих выгрузки
	GetPendingSyncCount(ctx context.Context) (int, error)

	// ResetSyncState забывает состояние сервера, следующий проход выгрузит всё заново
	ResetSyncState(ctx context.Context) error
}

// service sequences the engine steps into one sync pass
type service struct {
	apiClient       APIClient
	engine          *Engine
	metadataStorage storage.MetadataStorage
	logger          *slog.Logger
}

// NewService creates a new sync service
func NewService(apiClient APIClient, store storage.RecordStorage, metadataStorage storage.MetadataStorage, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		apiClient:       apiClient,
		engine:          NewEngine(store, logger),
		metadataStorage: metadataStorage,
		logger:          logger,
	}
}

// SyncResult contains sync operation results
type SyncResult struct {
	PulledEntries  int // количество полученных с сервера записей
	TakenEntries   int // количество записей, принятых с сервера как есть
	MergedEntries  int // количество слитых записей
	DeletedEntries int // количество записей, удалённых локально
	PushedEntries  int // количество принятых сервером записей
	SkippedEntries int // количество записей, отклонённых сервером
}

// Sync performs one full sync pass:
// 1. Fetches server changes since the last sync and stages them
// 2. Classifies, plans and applies them to local records
// 3. Uploads pending local changes
// 4. Records the upload and folds staging into the mirror
//
// Cancelling ctx interrupts the pass with interrupt.ErrInterrupted; every
// step is transactional, so a failed pass can simply be run again.
func (s *service) Sync(ctx context.Context) (*SyncResult, error) {
	signal := interrupt.FromContext(ctx)
	result := &SyncResult{}

	// Получаем last known server timestamp из metadata storage
	since, err := s.metadataStorage.GetLastSyncTimestamp(ctx)
	if err != nil {
		s.logger.Warn("Failed to get last sync timestamp, using 0", "error", err)
		since = 0
	}

	s.logger.Info("Starting synchronization", "since", since.String())

	incoming, err := s.apiClient.GetRecords(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch incoming records: %w", err)
	}
	result.PulledEntries = len(incoming.Records)

	if err := s.engine.StageIncoming(ctx, incoming.Records, signal); err != nil {
		return nil, fmt.Errorf("failed to stage incoming records: %w", err)
	}

	classified, err := s.engine.GetIncoming(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to classify incoming records: %w", err)
	}

	actions := PlanAll(classified)
	for _, pa := range actions {
		switch pa.Action.(type) {
		case TakeRemote:
			result.TakenEntries++
		case Merge:
			result.MergedEntries++
		case DeleteLocally:
			result.DeletedEntries++
		}
	}

	if err := s.engine.ApplyActions(ctx, actions, signal); err != nil {
		return nil, fmt.Errorf("failed to apply incoming actions: %w", err)
	}

	outgoing, err := s.engine.GetOutgoing(ctx, signal)
	if err != nil {
		return nil, fmt.Errorf("failed to collect outgoing records: %w", err)
	}

	s.logger.Info("Collected local changes", "count", len(outgoing))

	lastModified := incoming.LastModified
	uploaded := make([]OutgoingInfo, 0, len(outgoing))

	if len(outgoing) > 0 {
		payloads := make([]api.ServerPayload, 0, len(outgoing))
		for _, info := range outgoing {
			payloads = append(payloads, info.Payload)
		}

		// Пакет основан на incoming.LastModified: если другое устройство успело
		// записать после него, сервер отклонит пакет и проход повторится позже
		posted, err := s.apiClient.PostRecords(ctx, payloads, incoming.LastModified)
		if err != nil {
			return nil, fmt.Errorf("failed to upload records: %w", err)
		}

		accepted := make(map[string]struct{}, len(posted.Success))
		for _, guid := range posted.Success {
			accepted[guid] = struct{}{}
		}

		for _, info := range outgoing {
			if _, ok := accepted[info.Payload.GUID]; !ok {
				s.logger.Warn("Server rejected record",
					"ext_id", info.State.ExtID,
					"guid", info.Payload.GUID,
					"reason", posted.Failed[info.Payload.GUID])
				result.SkippedEntries++
				continue
			}
			// Mirror хранит реальное серверное время принятия записи
			info.Payload.LastModified = posted.LastModified
			uploaded = append(uploaded, info)
		}

		if posted.LastModified > lastModified {
			lastModified = posted.LastModified
		}
	}
	result.PushedEntries = len(uploaded)

	if err := s.engine.RecordUploaded(ctx, uploaded, signal); err != nil {
		return nil, fmt.Errorf("failed to record uploaded records: %w", err)
	}

	// Сохраняем server timestamp для следующей синхронизации
	if lastModified > since {
		if err := s.metadataStorage.SaveLastSyncTimestamp(ctx, lastModified); err != nil {
			// Не прерываем синхронизацию: в худшем случае записи будут получены повторно
			s.logger.Warn("Failed to save last sync timestamp", "error", err)
		}
	}

	s.logger.Info("Synchronization completed",
		"pulled", result.PulledEntries,
		"taken", result.TakenEntries,
		"merged", result.MergedEntries,
		"deleted", result.DeletedEntries,
		"pushed", result.PushedEntries,
		"skipped", result.SkippedEntries)

	return result, nil
}

// GetPendingSyncCount возвращает количество записей, ожидающих выгрузки
func (s *service) GetPendingSyncCount(ctx context.Context) (int, error) {
	return s.engine.GetPendingCount(ctx)
}

// ResetSyncState clears the mirror and the last sync timestamp so the next
// pass fetches everything and uploads every local record.
func (s *service) ResetSyncState(ctx context.Context) error {
	if err := s.engine.ResetSyncState(ctx); err != nil {
		return err
	}
	if err := s.metadataStorage.SaveLastSyncTimestamp(ctx, 0); err != nil {
		return fmt.Errorf("failed to reset last sync timestamp: %w", err)
	}
	s.logger.Info("Sync state reset")
	return nil
}
