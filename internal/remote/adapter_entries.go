package remote

import (
	"github.com/evamaren/daybook/internal/models"
	"github.com/google/uuid"
)

// EntryChanges is a partial update: nil fields keep their current value.
type EntryChanges struct {
	Date         *string
	Content      *string
	Energy       *int
	Productivity *int
}

func (adapter *Adapter) FetchEntries(ownerID uint) ([]models.JournalEntry, error) {
	if ownerID == 0 {
		return nil, ErrUnauthorized
	}
	entries, err := adapter.repos.Entries.ListByOwner(ownerID)
	if err != nil {
		return nil, remoteFailure("fetch entries", err)
	}
	return entries, nil
}

func (adapter *Adapter) FetchRecentEntries(ownerID uint, limit int) ([]models.JournalEntry, error) {
	if ownerID == 0 {
		return nil, ErrUnauthorized
	}
	entries, err := adapter.repos.Entries.ListRecentByOwner(ownerID, limit)
	if err != nil {
		return nil, remoteFailure("fetch recent entries", err)
	}
	return entries, nil
}

func (adapter *Adapter) GetEntry(ownerID uint, id string) (models.JournalEntry, error) {
	if ownerID == 0 {
		return models.JournalEntry{}, ErrUnauthorized
	}
	entry, found, err := adapter.repos.Entries.FindByOwnerAndID(ownerID, id)
	if err != nil {
		return models.JournalEntry{}, remoteFailure("get entry", err)
	}
	if !found {
		return models.JournalEntry{}, ErrNotFound
	}
	return entry, nil
}

func (adapter *Adapter) CreateEntry(source SessionSource, input models.JournalEntry) (models.JournalEntry, error) {
	ownerID, err := adapter.resolveOwner(source)
	if err != nil {
		return models.JournalEntry{}, err
	}

	entry := input
	entry.ID = uuid.NewString()
	entry.OwnerID = ownerID
	entry.Energy = models.ClampRating(entry.Energy)
	entry.Productivity = models.ClampRating(entry.Productivity)

	if err := adapter.repos.Entries.Create(&entry); err != nil {
		return models.JournalEntry{}, remoteFailure("create entry", err)
	}

	adapter.bus.Publish(TableEntries)
	return entry, nil
}

func (adapter *Adapter) UpdateEntry(source SessionSource, id string, changes EntryChanges) (models.JournalEntry, error) {
	ownerID, err := adapter.resolveOwner(source)
	if err != nil {
		return models.JournalEntry{}, err
	}

	updates := make(map[string]any)
	if changes.Date != nil {
		updates["date"] = *changes.Date
	}
	if changes.Content != nil {
		updates["content"] = *changes.Content
	}
	if changes.Energy != nil {
		updates["energy"] = models.ClampRating(*changes.Energy)
	}
	if changes.Productivity != nil {
		updates["productivity"] = models.ClampRating(*changes.Productivity)
	}

	if len(updates) > 0 {
		rows, err := adapter.repos.Entries.UpdateByOwnerAndID(ownerID, id, updates)
		if err != nil {
			return models.JournalEntry{}, remoteFailure("update entry", err)
		}
		if rows == 0 {
			return models.JournalEntry{}, ErrNotFound
		}
		adapter.bus.Publish(TableEntries)
	}

	return adapter.GetEntry(ownerID, id)
}

func (adapter *Adapter) DeleteEntry(source SessionSource, id string) error {
	ownerID, err := adapter.resolveOwner(source)
	if err != nil {
		return err
	}

	rows, err := adapter.repos.Entries.DeleteByOwnerAndID(ownerID, id)
	if err != nil {
		return remoteFailure("delete entry", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	adapter.bus.Publish(TableEntries)
	return nil
}
