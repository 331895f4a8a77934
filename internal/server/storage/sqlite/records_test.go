package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/extstorage/internal/server/storage"
	"github.com/iudanet/extstorage/pkg/api"
)

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func strPtr(s string) *string {
	return &s
}

func TestNew_ReopenFile(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "server.db")

	s, err := New(ctx, dbPath)
	require.NoError(t, err)
	_, err = s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-1", ExtID: "ext-1", Data: strPtr(`{"a":1}`)},
	}, 1000, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = New(ctx, dbPath)
	require.NoError(t, err)
	defer func() {
		_ = s.Close()
	}()
	require.NoError(t, s.Ping(ctx))

	records, lastModified, err := s.GetRecordsSince(ctx, "user", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, api.ServerTimestamp(1000), lastModified)
}

func TestGetRecordsSince_Empty(t *testing.T) {
	s := setupTestStorage(t)

	records, lastModified, err := s.GetRecordsSince(context.Background(), "user", 0)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, api.ServerTimestamp(0), lastModified)
}

func TestPutRecords_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	result, err := s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-1", ExtID: "ext-1", Data: strPtr(`{"a":1}`)},
		{GUID: "guid-2", ExtID: "ext-2", Deleted: true},
	}, 1000, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Failed)
	assert.ElementsMatch(t, []string{"guid-1", "guid-2"}, result.Success)
	assert.Equal(t, api.ServerTimestamp(1000), result.LastModified)

	records, lastModified, err := s.GetRecordsSince(ctx, "user", 0)
	require.NoError(t, err)
	assert.Equal(t, api.ServerTimestamp(1000), lastModified)
	require.Len(t, records, 2)

	assert.Equal(t, "guid-1", records[0].GUID)
	assert.Equal(t, "ext-1", records[0].ExtID)
	require.NotNil(t, records[0].Data)
	assert.Equal(t, `{"a":1}`, *records[0].Data)
	assert.False(t, records[0].Deleted)
	assert.Equal(t, api.ServerTimestamp(1000), records[0].LastModified)

	assert.Equal(t, "guid-2", records[1].GUID)
	assert.Nil(t, records[1].Data)
	assert.True(t, records[1].Deleted)
	assert.True(t, records[1].IsTombstone())
}

func TestPutRecords_TimestampsIncrease(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	first, err := s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-1", ExtID: "ext-1", Data: strPtr(`{}`)},
	}, 5000, nil)
	require.NoError(t, err)
	assert.Equal(t, api.ServerTimestamp(5000), first.LastModified)

	// Часы сервера ушли назад
	second, err := s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-2", ExtID: "ext-2", Data: strPtr(`{}`)},
	}, 4000, nil)
	require.NoError(t, err)
	assert.Equal(t, api.ServerTimestamp(5001), second.LastModified)

	records, lastModified, err := s.GetRecordsSince(ctx, "user", first.LastModified)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "guid-2", records[0].GUID)
	assert.Equal(t, api.ServerTimestamp(5001), lastModified)
}

func TestPutRecords_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	_, err := s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-1", ExtID: "ext-1", Data: strPtr(`{"a":1}`)},
	}, 1000, nil)
	require.NoError(t, err)

	_, err = s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-1", ExtID: "ext-1", Data: strPtr(`{"a":2}`)},
	}, 2000, nil)
	require.NoError(t, err)

	records, _, err := s.GetRecordsSince(ctx, "user", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, `{"a":2}`, *records[0].Data)

	_, err = s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-1", ExtID: "ext-1", Deleted: true},
	}, 3000, nil)
	require.NoError(t, err)

	records, _, err = s.GetRecordsSince(ctx, "user", 2000)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsTombstone())
	assert.Equal(t, api.ServerTimestamp(3000), records[0].LastModified)
}

func TestPutRecords_ExtIDConflict(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	_, err := s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-1", ExtID: "ext-1", Data: strPtr(`{}`)},
	}, 1000, nil)
	require.NoError(t, err)

	result, err := s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-other", ExtID: "ext-1", Data: strPtr(`{"b":1}`)},
		{GUID: "guid-2", ExtID: "ext-2", Data: strPtr(`{}`)},
	}, 2000, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"guid-2"}, result.Success)
	require.Contains(t, result.Failed, "guid-other")
	assert.Equal(t, storage.ErrExtIDConflict.Error(), result.Failed["guid-other"])
	assert.Equal(t, api.ServerTimestamp(2000), result.LastModified)

	records, _, err := s.GetRecordsSince(ctx, "user", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "guid-1", records[0].GUID)
}

func TestPutRecords_AllFailedKeepsTimestamp(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	_, err := s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-1", ExtID: "ext-1", Data: strPtr(`{}`)},
	}, 1000, nil)
	require.NoError(t, err)

	result, err := s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-other", ExtID: "ext-1", Data: strPtr(`{}`)},
	}, 2000, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Success)
	assert.Len(t, result.Failed, 1)
	assert.Equal(t, api.ServerTimestamp(1000), result.LastModified)

	_, lastModified, err := s.GetRecordsSince(ctx, "user", 0)
	require.NoError(t, err)
	assert.Equal(t, api.ServerTimestamp(1000), lastModified)
}

func TestPutRecords_UsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	_, err := s.PutRecords(ctx, "alice", []api.ServerPayload{
		{GUID: "guid-1", ExtID: "ext-1", Data: strPtr(`{"owner":"alice"}`)},
	}, 1000, nil)
	require.NoError(t, err)

	// Тот же guid и ext_id у другого пользователя не конфликтуют
	result, err := s.PutRecords(ctx, "bob", []api.ServerPayload{
		{GUID: "guid-1", ExtID: "ext-1", Data: strPtr(`{"owner":"bob"}`)},
	}, 500, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Failed)
	assert.Equal(t, api.ServerTimestamp(500), result.LastModified)

	records, _, err := s.GetRecordsSince(ctx, "alice", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, `{"owner":"alice"}`, *records[0].Data)
}

func TestPutRecords_IfUnmodifiedSince(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)

	first, err := s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-1", ExtID: "ext-1", Data: strPtr(`{}`)},
	}, 1000, nil)
	require.NoError(t, err)

	// Пакет основан на актуальном времени коллекции
	since := first.LastModified
	second, err := s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-2", ExtID: "ext-2", Data: strPtr(`{}`)},
	}, 2000, &since)
	require.NoError(t, err)

	// Пакет основан на устаревшем времени
	_, err = s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-3", ExtID: "ext-3", Data: strPtr(`{}`)},
	}, 3000, &since)
	assert.ErrorIs(t, err, storage.ErrCollectionModified)

	records, lastModified, err := s.GetRecordsSince(ctx, "user", 0)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, second.LastModified, lastModified)

	// Пустая коллекция другого пользователя принимает since = 0
	zero := api.ServerTimestamp(0)
	_, err = s.PutRecords(ctx, "other", []api.ServerPayload{
		{GUID: "guid-1", ExtID: "ext-1", Data: strPtr(`{}`)},
	}, 3000, &zero)
	assert.NoError(t, err)
}

// Клиент, который сохраняет last_modified как since, не должен пропускать
// записи, сделанные параллельно с чтением
func TestGetRecordsSince_ConcurrentWritesNotSkipped(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, filepath.Join(t.TempDir(), "server.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})

	const total = 300
	writeErr := make(chan error, 1)
	go func() {
		defer close(writeErr)
		for i := 0; i < total; i++ {
			_, err := s.PutRecords(ctx, "user", []api.ServerPayload{
				{GUID: fmt.Sprintf("guid-%d", i), ExtID: fmt.Sprintf("ext-%d", i), Data: strPtr(`{"n":1}`)},
			}, time.Now().UnixMilli(), nil)
			if err != nil {
				writeErr <- err
				return
			}
		}
	}()

	seen := make(map[string]struct{}, total)
	var since api.ServerTimestamp
	read := func() {
		records, lastModified, err := s.GetRecordsSince(ctx, "user", since)
		require.NoError(t, err)
		for _, r := range records {
			assert.LessOrEqual(t, r.LastModified, lastModified)
			seen[r.GUID] = struct{}{}
		}
		since = lastModified
	}

	for done := false; !done; {
		select {
		case err, ok := <-writeErr:
			require.False(t, ok, "write failed: %v", err)
			done = true
		default:
			read()
		}
	}
	read()

	assert.Len(t, seen, total)
}

func TestStorage_ContextCancelled(t *testing.T) {
	s := setupTestStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.GetRecordsSince(ctx, "user", 0)
	assert.Error(t, err)

	_, err = s.PutRecords(ctx, "user", []api.ServerPayload{
		{GUID: "guid-1", ExtID: "ext-1", Data: strPtr(`{}`)},
	}, 1000, nil)
	assert.Error(t, err)
}
