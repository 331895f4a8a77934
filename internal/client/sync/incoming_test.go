package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/extstorage/internal/interrupt"
	"github.com/iudanet/extstorage/internal/models"
	"github.com/iudanet/extstorage/pkg/api"
)

func TestStageIncoming_PopulatesStaging(t *testing.T) {
	ctx := context.Background()
	engine, store := setupTestEngine(t)

	batch := []api.ServerPayload{
		payload("guidAAAAAAAA", "ext1@example.com", models.JSONMap{"foo": "bar"}, 0),
	}

	require.NoError(t, engine.StageIncoming(ctx, batch, interrupt.Never))
	assert.Equal(t, int64(1), queryInt(t, store, "SELECT count(*) FROM temp.extension_data_staging"))
}

func TestStageIncoming_DuplicatesReplace(t *testing.T) {
	ctx := context.Background()
	engine, store := setupTestEngine(t)

	batch := []api.ServerPayload{
		payload("guid", "ext", models.JSONMap{"v": "1"}, 1000),
		payload("guid", "ext", models.JSONMap{"v": "2"}, 2000),
	}

	require.NoError(t, engine.StageIncoming(ctx, batch, interrupt.Never))
	assert.Equal(t, int64(1), queryInt(t, store, "SELECT count(*) FROM temp.extension_data_staging"))
	assert.Equal(t, int64(2000), queryInt(t, store, "SELECT server_modified FROM temp.extension_data_staging WHERE guid = 'guid'"))
}

func TestStageIncoming_ReplacesPreviousBatch(t *testing.T) {
	ctx := context.Background()
	engine, store := setupTestEngine(t)

	require.NoError(t, engine.StageIncoming(ctx, []api.ServerPayload{
		payload("old", "ext-old", models.JSONMap{}, 0),
	}, interrupt.Never))
	require.NoError(t, engine.StageIncoming(ctx, []api.ServerPayload{
		payload("new", "ext-new", models.JSONMap{}, 0),
	}, interrupt.Never))

	assert.Equal(t, int64(1), queryInt(t, store, "SELECT count(*) FROM temp.extension_data_staging"))
	assert.Equal(t, int64(1), queryInt(t, store, "SELECT count(*) FROM temp.extension_data_staging WHERE guid = 'new'"))
}

func TestStageIncoming_TombstonesStoredAsNull(t *testing.T) {
	ctx := context.Background()
	engine, store := setupTestEngine(t)

	data := `{"foo":"bar"}`
	batch := []api.ServerPayload{
		{GUID: "deleted", ExtID: "ext1", Data: &data, Deleted: true},
		{GUID: "nodata", ExtID: "ext2"},
	}

	require.NoError(t, engine.StageIncoming(ctx, batch, interrupt.Never))
	assert.Equal(t, int64(2), queryInt(t, store, "SELECT count(*) FROM temp.extension_data_staging WHERE data IS NULL"))
}

func TestStageIncoming_Interrupted(t *testing.T) {
	ctx := context.Background()
	engine, store := setupTestEngine(t)

	batch := []api.ServerPayload{
		payload("guid1", "ext1", models.JSONMap{"a": "1"}, 0),
		payload("guid2", "ext2", models.JSONMap{"b": "2"}, 0),
	}

	err := engine.StageIncoming(ctx, batch, &countdown{n: 1})
	assert.ErrorIs(t, err, interrupt.ErrInterrupted)
	assert.Equal(t, int64(0), queryInt(t, store, "SELECT count(*) FROM temp.extension_data_staging"))
}

func TestGetIncoming_States(t *testing.T) {
	ctx := context.Background()
	engine, store := setupTestEngine(t)

	// Сначала запись есть только в staging
	execSQL(t, store, `
		INSERT INTO temp.extension_data_staging (guid, ext_id, data, server_modified)
		VALUES ('guid', 'ext_id', '{"foo":"bar"}', 1)`)

	incoming, err := engine.GetIncoming(ctx)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, IncomingItem{GUID: "guid", ExtID: "ext_id"}, incoming[0].Item)
	assert.Equal(t, IncomingOnly{Incoming: models.JSONMap{"foo": "bar"}}, incoming[0].State)

	// Добавляем ту же запись в mirror
	execSQL(t, store, `
		INSERT INTO extension_data_mirror (guid, ext_id, data, server_modified)
		VALUES ('guid', 'ext_id', '{"foo":"new"}', 2)`)

	incoming, err = engine.GetIncoming(ctx)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, NotLocal{
		Incoming: models.JSONMap{"foo": "bar"},
		Mirror:   models.JSONMap{"foo": "new"},
	}, incoming[0].State)

	// И наконец локальные данные через key/value API
	require.NoError(t, store.Set(ctx, "ext_id", models.JSONMap{"foo": "local"}))

	incoming, err = engine.GetIncoming(ctx)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, Everywhere{
		Incoming: models.JSONMap{"foo": "bar"},
		Local:    models.JSONMap{"foo": "local"},
		Mirror:   models.JSONMap{"foo": "new"},
	}, incoming[0].State)
}

func TestGetIncoming_LocalOnly(t *testing.T) {
	ctx := context.Background()
	engine, store := setupTestEngine(t)

	require.NoError(t, store.Set(ctx, "ext_id", models.JSONMap{"foo": "local"}))
	require.NoError(t, engine.StageIncoming(ctx, []api.ServerPayload{
		payload("guid", "ext_id", models.JSONMap{"foo": "bar"}, 0),
	}, interrupt.Never))

	incoming, err := engine.GetIncoming(ctx)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, LocalOnly{
		Incoming: models.JSONMap{"foo": "bar"},
		Local:    models.JSONMap{"foo": "local"},
	}, incoming[0].State)
}

func TestGetIncoming_Nulls(t *testing.T) {
	ctx := context.Background()
	engine, store := setupTestEngine(t)

	execSQL(t, store, `
		INSERT INTO temp.extension_data_staging (guid, ext_id, data, server_modified)
		VALUES ('guid', 'ext_id', NULL, 1)`)

	incoming, err := engine.GetIncoming(ctx)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, IncomingOnly{}, incoming[0].State)

	execSQL(t, store, `
		INSERT INTO extension_data_mirror (guid, ext_id, data, server_modified)
		VALUES ('guid', 'ext_id', NULL, 2)`)

	incoming, err = engine.GetIncoming(ctx)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, NotLocal{}, incoming[0].State)

	execSQL(t, store, `
		INSERT INTO extension_data (ext_id, sync_status, data)
		VALUES ('ext_id', 2, NULL)`)

	incoming, err = engine.GetIncoming(ctx)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, Everywhere{}, incoming[0].State)
}

func TestGetIncoming_MalformedJSON(t *testing.T) {
	ctx := context.Background()
	engine, store := setupTestEngine(t)

	execSQL(t, store, `
		INSERT INTO temp.extension_data_staging (guid, ext_id, data, server_modified)
		VALUES ('bad-json', 'ext1', '{not json', 1),
		       ('not-object', 'ext2', '[1, 2, 3]', 1),
		       ('string', 'ext3', '"text"', 1)`)

	incoming, err := engine.GetIncoming(ctx)
	require.NoError(t, err)
	require.Len(t, incoming, 3)
	for _, ci := range incoming {
		assert.Equal(t, IncomingOnly{}, ci.State, ci.Item.GUID)
	}
}

func TestGetIncoming_Idempotent(t *testing.T) {
	ctx := context.Background()
	engine, store := setupTestEngine(t)

	require.NoError(t, store.Set(ctx, "ext1", models.JSONMap{"a": "1"}))
	require.NoError(t, engine.StageIncoming(ctx, []api.ServerPayload{
		payload("g1", "ext1", models.JSONMap{"a": "2"}, 0),
		payload("g2", "ext2", nil, 0),
	}, interrupt.Never))

	first, err := engine.GetIncoming(ctx)
	require.NoError(t, err)
	second, err := engine.GetIncoming(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}
