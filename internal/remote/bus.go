package remote

import "sync"

const (
	TableEntries = "journal_entries"
	TableMeals   = "meals"
	TablePlans   = "weekly_plans"
)

// Bus fans out table-change notifications. Callbacks carry no payload:
// subscribers must treat a call purely as "something changed, refetch".
// No ordering is guaranteed between a write returning and the notification
// that write triggers.
type Bus struct {
	mu          sync.Mutex
	nextID      uint64
	subscribers map[string]map[uint64]func()
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[string]map[uint64]func())}
}

// Subscribe registers onChange for the given table and returns a teardown
// function. Teardown is idempotent: calling it more than once is a no-op.
func (bus *Bus) Subscribe(table string, onChange func()) func() {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.nextID++
	id := bus.nextID
	if bus.subscribers[table] == nil {
		bus.subscribers[table] = make(map[uint64]func())
	}
	bus.subscribers[table][id] = onChange

	return func() {
		bus.mu.Lock()
		defer bus.mu.Unlock()
		if set := bus.subscribers[table]; set != nil {
			delete(set, id)
			if len(set) == 0 {
				delete(bus.subscribers, table)
			}
		}
	}
}

// Publish invokes every live subscriber for the table.
func (bus *Bus) Publish(table string) {
	bus.mu.Lock()
	callbacks := make([]func(), 0, len(bus.subscribers[table]))
	for _, callback := range bus.subscribers[table] {
		callbacks = append(callbacks, callback)
	}
	bus.mu.Unlock()

	for _, callback := range callbacks {
		callback()
	}
}
