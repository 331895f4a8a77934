package sync

import (
	"fmt"

	"github.com/iudanet/extstorage/internal/models"
)

// IncomingItem identifies a staged incoming record.
type IncomingItem struct {
	GUID  string
	ExtID string
}

// IncomingState describes which of the incoming, local and mirror records
// exist for an item. Inside each state a nil JSONMap means a tombstone at
// that layer.
//
// Implementations: IncomingOnly, LocalOnly, NotLocal, Everywhere.
type IncomingState interface {
	isIncomingState()
}

// IncomingOnly - ни локальной записи, ни записи в mirror нет:
// клиент видит запись впервые.
type IncomingOnly struct {
	Incoming models.JSONMap
}

// LocalOnly - локальная запись есть, в mirror нет:
// первая синхронизация записи, созданной локально.
type LocalOnly struct {
	Incoming models.JSONMap
	Local    models.JSONMap
}

// NotLocal - запись есть в mirror, но не локально:
// ранее синхронизирована, затем удалена локально.
type NotLocal struct {
	Incoming models.JSONMap
	Mirror   models.JSONMap
}

// Everywhere - запись есть везде, обычная синхронизация.
type Everywhere struct {
	Incoming models.JSONMap
	Mirror   models.JSONMap
	Local    models.JSONMap
}

func (IncomingOnly) isIncomingState() {}
func (LocalOnly) isIncomingState()    {}
func (NotLocal) isIncomingState()     {}
func (Everywhere) isIncomingState()   {}

// IncomingAction is what should be done locally for an incoming item.
//
// Implementations: DeleteLocally, DeleteRemotely, TakeRemote, Merge, Same.
type IncomingAction interface {
	fmt.Stringer
	isIncomingAction()
}

// DeleteLocally removes the local record entirely.
type DeleteLocally struct{}

// DeleteRemotely tombstones the local record so the deletion is uploaded.
type DeleteRemotely struct{}

// TakeRemote replaces local data with the incoming data.
type TakeRemote struct {
	Data models.JSONMap
}

// Merge stores the merged data, which still has to be uploaded.
type Merge struct {
	Data models.JSONMap
}

// Same means local and remote already agree.
type Same struct{}

func (DeleteLocally) isIncomingAction()  {}
func (DeleteRemotely) isIncomingAction() {}
func (TakeRemote) isIncomingAction()     {}
func (Merge) isIncomingAction()          {}
func (Same) isIncomingAction()           {}

func (DeleteLocally) String() string  { return "DeleteLocally" }
func (DeleteRemotely) String() string { return "DeleteRemotely" }
func (a TakeRemote) String() string   { return fmt.Sprintf("TakeRemote%v", map[string]any(a.Data)) }
func (a Merge) String() string        { return fmt.Sprintf("Merge%v", map[string]any(a.Data)) }
func (Same) String() string           { return "Same" }

// PlannedAction pairs an incoming item with the action chosen for it.
type PlannedAction struct {
	Action IncomingAction
	Item   IncomingItem
}

// ClassifiedItem pairs an incoming item with its state.
type ClassifiedItem struct {
	State IncomingState
	Item  IncomingItem
}
