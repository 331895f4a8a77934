package sync

import (
	"reflect"

	"github.com/iudanet/extstorage/internal/models"
)

// mergeJSON resolves a conflict between incoming and local data field by field.
//
// Without a parent every key of both sides is kept and incoming wins on
// conflicting values. With a parent, a key changed (or removed) only
// locally keeps the local state; any other key takes the incoming state.
//
// The result is TakeRemote when it equals the incoming data, otherwise
// Merge, because the server does not have it yet.
func mergeJSON(incoming, local, parent models.JSONMap) IncomingAction {
	merged := make(models.JSONMap, len(incoming)+len(local))

	if parent == nil {
		for k, v := range local {
			merged[k] = v
		}
		for k, v := range incoming {
			merged[k] = v
		}
	} else {
		keys := make(map[string]struct{}, len(incoming)+len(local)+len(parent))
		for k := range incoming {
			keys[k] = struct{}{}
		}
		for k := range local {
			keys[k] = struct{}{}
		}
		for k := range parent {
			keys[k] = struct{}{}
		}

		for k := range keys {
			incVal, incOK := incoming[k]
			locVal, locOK := local[k]
			parVal, parOK := parent[k]

			localChanged := locOK != parOK || !reflect.DeepEqual(locVal, parVal)
			incomingChanged := incOK != parOK || !reflect.DeepEqual(incVal, parVal)

			if localChanged && !incomingChanged {
				if locOK {
					merged[k] = locVal
				}
				continue
			}
			if incOK {
				merged[k] = incVal
			}
		}
	}

	if reflect.DeepEqual(merged, incoming) {
		return TakeRemote{Data: incoming}
	}
	return Merge{Data: merged}
}
