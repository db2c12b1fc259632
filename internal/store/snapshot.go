package store

import (
	"sort"
	"sync"
)

// Entity is anything the snapshot container can hold.
type Entity interface {
	EntityID() string
	EntityDate() string
}

// Snapshot holds the most recently fetched set of one entity kind, ordered by
// date descending. The remote service stays authoritative: a refetch replaces
// the whole set instead of merging into it, so deleted rows cannot linger as
// stale ghosts.
type Snapshot[T Entity] struct {
	mu      sync.RWMutex
	items   []T
	active  string
	persist func([]T)
}

func NewSnapshot[T Entity]() *Snapshot[T] {
	return &Snapshot[T]{items: make([]T, 0)}
}

// SetPersist installs a write-through hook invoked with the full list after
// every mutation.
func (snapshot *Snapshot[T]) SetPersist(fn func([]T)) {
	snapshot.mu.Lock()
	defer snapshot.mu.Unlock()
	snapshot.persist = fn
}

// List returns a copy of the known entities, date descending. Ties keep their
// insertion order.
func (snapshot *Snapshot[T]) List() []T {
	snapshot.mu.RLock()
	defer snapshot.mu.RUnlock()

	items := make([]T, len(snapshot.items))
	copy(items, snapshot.items)
	return items
}

// Get returns the entity with the given id. A missing id is not an error.
func (snapshot *Snapshot[T]) Get(id string) (T, bool) {
	snapshot.mu.RLock()
	defer snapshot.mu.RUnlock()

	for _, item := range snapshot.items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (snapshot *Snapshot[T]) Len() int {
	snapshot.mu.RLock()
	defer snapshot.mu.RUnlock()
	return len(snapshot.items)
}

// ReplaceAll swaps in a fresh snapshot wholesale and re-resolves the active
// selection: a selected id that is gone from the new set (deleted by another
// session, for example) clears the selection instead of dangling.
func (snapshot *Snapshot[T]) ReplaceAll(items []T) {
	snapshot.mu.Lock()
	defer snapshot.mu.Unlock()

	replacement := make([]T, len(items))
	copy(replacement, items)
	sortByDateDesc(replacement)
	snapshot.items = replacement
	snapshot.resolveSelectionLocked()
	snapshot.persistLocked()
}

// Add prepends a new entity, keeping date-descending order.
func (snapshot *Snapshot[T]) Add(item T) {
	snapshot.mu.Lock()
	defer snapshot.mu.Unlock()

	snapshot.items = append([]T{item}, snapshot.items...)
	sortByDateDesc(snapshot.items)
	snapshot.persistLocked()
}

// Update replaces the entity with the same id. Unknown ids are ignored.
func (snapshot *Snapshot[T]) Update(item T) {
	snapshot.mu.Lock()
	defer snapshot.mu.Unlock()

	for index, existing := range snapshot.items {
		if existing.EntityID() == item.EntityID() {
			snapshot.items[index] = item
			break
		}
	}
	sortByDateDesc(snapshot.items)
	snapshot.persistLocked()
}

// Remove drops the entity with the given id and clears the selection when it
// pointed at the removed entity.
func (snapshot *Snapshot[T]) Remove(id string) {
	snapshot.mu.Lock()
	defer snapshot.mu.Unlock()

	kept := snapshot.items[:0]
	for _, item := range snapshot.items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	snapshot.items = kept
	if snapshot.active == id {
		snapshot.active = ""
	}
	snapshot.persistLocked()
}

func (snapshot *Snapshot[T]) persistLocked() {
	if snapshot.persist == nil {
		return
	}
	items := make([]T, len(snapshot.items))
	copy(items, snapshot.items)
	snapshot.persist(items)
}

func sortByDateDesc[T Entity](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].EntityDate() > items[j].EntityDate()
	})
}
