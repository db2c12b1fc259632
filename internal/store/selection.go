package store

// Select records the active entity id. An empty id means "composing a new
// entity". Selecting an id that is not (or not yet) in the snapshot is
// allowed; the consuming form resolves it lazily and falls back to a blank
// draft when the entity cannot be found.
func (snapshot *Snapshot[T]) Select(id string) {
	snapshot.mu.Lock()
	defer snapshot.mu.Unlock()
	snapshot.active = id
}

// Selected returns the active entity id, or "" when nothing is selected.
func (snapshot *Snapshot[T]) Selected() string {
	snapshot.mu.RLock()
	defer snapshot.mu.RUnlock()
	return snapshot.active
}

func (snapshot *Snapshot[T]) ClearSelection() {
	snapshot.mu.Lock()
	defer snapshot.mu.Unlock()
	snapshot.active = ""
}

// resolveSelectionLocked clears a selection that no longer resolves against
// the current set.
func (snapshot *Snapshot[T]) resolveSelectionLocked() {
	if snapshot.active == "" {
		return
	}
	for _, item := range snapshot.items {
		if item.EntityID() == snapshot.active {
			return
		}
	}
	snapshot.active = ""
}
