package sync

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iudanet/extstorage/internal/client/storage"
)

// GetIncoming classifies every staged record against the mirror (by guid)
// and the local records (by ext_id). It does not modify anything.
func (e *Engine) GetIncoming(ctx context.Context) ([]ClassifiedItem, error) {
	query := `
		SELECT
			s.guid AS guid,
			s.ext_id AS ext_id,
			m.guid IS NOT NULL AS m_exists,
			l.ext_id IS NOT NULL AS l_exists,
			s.data AS s_data,
			m.data AS m_data,
			l.data AS l_data
		FROM temp.extension_data_staging s
		LEFT JOIN extension_data_mirror m ON m.guid = s.guid
		LEFT JOIN extension_data l ON l.ext_id = s.ext_id
		ORDER BY s.guid
	`

	var items []ClassifiedItem

	err := e.store.Read(ctx, func(q storage.Querier) (err error) {
		rows, err := q.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to query staging: %w", err)
		}
		defer func() {
			if cerr := rows.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		for rows.Next() {
			var (
				item                              IncomingItem
				mirrorExists, localExists         bool
				stagedData, mirrorData, localData sql.NullString
			)

			if err := rows.Scan(&item.GUID, &item.ExtID, &mirrorExists, &localExists, &stagedData, &mirrorData, &localData); err != nil {
				return fmt.Errorf("failed to scan staging row: %w", err)
			}

			incoming := e.jsonMapFromColumn("s_data", stagedData)

			var state IncomingState
			switch {
			case !localExists && !mirrorExists:
				state = IncomingOnly{Incoming: incoming}
			case localExists && !mirrorExists:
				state = LocalOnly{
					Incoming: incoming,
					Local:    e.jsonMapFromColumn("l_data", localData),
				}
			case !localExists && mirrorExists:
				state = NotLocal{
					Incoming: incoming,
					Mirror:   e.jsonMapFromColumn("m_data", mirrorData),
				}
			default:
				state = Everywhere{
					Incoming: incoming,
					Mirror:   e.jsonMapFromColumn("m_data", mirrorData),
					Local:    e.jsonMapFromColumn("l_data", localData),
				}
			}

			items = append(items, ClassifiedItem{Item: item, State: state})
		}

		if err := rows.Err(); err != nil {
			return fmt.Errorf("rows iteration error: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}
