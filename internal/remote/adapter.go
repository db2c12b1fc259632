package remote

import (
	"fmt"

	"github.com/evamaren/daybook/internal/db"
)

// Adapter translates store-level intents into remote operations and publishes
// a change notification after every successful write. The remote service is
// the single arbiter of write ordering: concurrent editors of the same entity
// silently last-write-win.
type Adapter struct {
	repos *db.Repositories
	bus   *Bus
}

func NewAdapter(repos *db.Repositories, bus *Bus) *Adapter {
	if bus == nil {
		bus = NewBus()
	}
	return &Adapter{repos: repos, bus: bus}
}

func (adapter *Adapter) Bus() *Bus {
	return adapter.bus
}

// Subscribe opens an invalidation channel for one table. See Bus.Subscribe.
func (adapter *Adapter) Subscribe(table string, onChange func()) func() {
	return adapter.bus.Subscribe(table, onChange)
}

// resolveOwner re-checks the session immediately before a write.
func (adapter *Adapter) resolveOwner(source SessionSource) (uint, error) {
	if source == nil {
		return 0, ErrNotAuthenticated
	}
	session, ok := source.CurrentSession()
	if !ok || session.OwnerID == 0 {
		return 0, ErrNotAuthenticated
	}
	return session.OwnerID, nil
}

func remoteFailure(operation string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrRemoteUnavailable, operation, err)
}
