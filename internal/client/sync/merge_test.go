package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iudanet/extstorage/internal/models"
)

func TestMergeJSON(t *testing.T) {
	tests := []struct {
		incoming models.JSONMap
		local    models.JSONMap
		parent   models.JSONMap
		want     IncomingAction
		name     string
	}{
		{
			name:     "two way: incoming wins conflicting keys",
			incoming: models.JSONMap{"key2": "key2-incoming"},
			local:    models.JSONMap{"key1": "key1-value", "key2": "key2-value"},
			want:     Merge{Data: models.JSONMap{"key1": "key1-value", "key2": "key2-incoming"}},
		},
		{
			name:     "two way: local is subset of incoming",
			incoming: models.JSONMap{"a": "1", "b": "2"},
			local:    models.JSONMap{"a": "old"},
			want:     TakeRemote{Data: models.JSONMap{"a": "1", "b": "2"}},
		},
		{
			name:     "three way: local change kept",
			incoming: models.JSONMap{"a": "1", "b": "2"},
			local:    models.JSONMap{"a": "local", "b": "2"},
			parent:   models.JSONMap{"a": "1", "b": "2"},
			want:     Merge{Data: models.JSONMap{"a": "local", "b": "2"}},
		},
		{
			name:     "three way: both sides change different keys",
			incoming: models.JSONMap{"a": "1", "b": "remote"},
			local:    models.JSONMap{"a": "local", "b": "2"},
			parent:   models.JSONMap{"a": "1", "b": "2"},
			want:     Merge{Data: models.JSONMap{"a": "local", "b": "remote"}},
		},
		{
			name:     "three way: both change same key, incoming wins",
			incoming: models.JSONMap{"a": "remote"},
			local:    models.JSONMap{"a": "local"},
			parent:   models.JSONMap{"a": "parent"},
			want:     TakeRemote{Data: models.JSONMap{"a": "remote"}},
		},
		{
			name:     "three way: local removal kept",
			incoming: models.JSONMap{"a": "1", "b": "2"},
			local:    models.JSONMap{"b": "2"},
			parent:   models.JSONMap{"a": "1", "b": "2"},
			want:     Merge{Data: models.JSONMap{"b": "2"}},
		},
		{
			name:     "three way: remote removal applied",
			incoming: models.JSONMap{"b": "2"},
			local:    models.JSONMap{"a": "1", "b": "2"},
			parent:   models.JSONMap{"a": "1", "b": "2"},
			want:     TakeRemote{Data: models.JSONMap{"b": "2"}},
		},
		{
			name:     "three way: key added locally",
			incoming: models.JSONMap{"a": "1"},
			local:    models.JSONMap{"a": "1", "new": float64(5)},
			parent:   models.JSONMap{"a": "1"},
			want:     Merge{Data: models.JSONMap{"a": "1", "new": float64(5)}},
		},
		{
			name:     "three way: nested values compared deeply",
			incoming: models.JSONMap{"obj": map[string]any{"x": float64(1)}},
			local:    models.JSONMap{"obj": map[string]any{"x": float64(1)}},
			parent:   models.JSONMap{"obj": map[string]any{"x": float64(1)}},
			want:     TakeRemote{Data: models.JSONMap{"obj": map[string]any{"x": float64(1)}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeJSON(tt.incoming, tt.local, tt.parent))
		})
	}
}

func TestMergeJSON_DoesNotModifyInputs(t *testing.T) {
	incoming := models.JSONMap{"a": "1"}
	local := models.JSONMap{"b": "2"}

	mergeJSON(incoming, local, nil)

	assert.Equal(t, models.JSONMap{"a": "1"}, incoming)
	assert.Equal(t, models.JSONMap{"b": "2"}, local)
}
