package sync

// PlanIncoming decides the local action for one classified item.
// It is pure: conflicts are resolved by mergeJSON, nothing touches the store.
func PlanIncoming(state IncomingState) IncomingAction {
	switch s := state.(type) {
	case Everywhere:
		switch {
		case s.Incoming != nil && s.Local != nil:
			// 3-way merge, либо 2-way если в mirror tombstone
			return mergeJSON(s.Incoming, s.Local, s.Mirror)
		case s.Incoming != nil:
			// Удалено локально, но есть новые данные на сервере - сервер побеждает
			return TakeRemote{Data: s.Incoming}
		default:
			// Known limitation: a remote tombstone wins even over keys that
			// were added locally since the last sync.
			return DeleteLocally{}
		}

	case LocalOnly:
		switch {
		case s.Incoming != nil && s.Local != nil:
			// Первая синхронизация записи, существующей и локально, и на сервере
			return mergeJSON(s.Incoming, s.Local, nil)
		case s.Incoming == nil && s.Local != nil:
			return DeleteLocally{}
		case s.Incoming != nil:
			return TakeRemote{Data: s.Incoming}
		default:
			return Same{}
		}

	case NotLocal:
		if s.Incoming != nil {
			return TakeRemote{Data: s.Incoming}
		}
		return Same{}

	case IncomingOnly:
		if s.Incoming != nil {
			return TakeRemote{Data: s.Incoming}
		}
		return DeleteLocally{}
	}

	panic("unknown incoming state")
}

// PlanAll plans every classified item, preserving order.
func PlanAll(items []ClassifiedItem) []PlannedAction {
	actions := make([]PlannedAction, 0, len(items))
	for _, ci := range items {
		actions = append(actions, PlannedAction{Item: ci.Item, Action: PlanIncoming(ci.State)})
	}
	return actions
}
