package forms

import (
	"errors"
	"testing"
	"time"

	"github.com/evamaren/daybook/internal/models"
	"github.com/evamaren/daybook/internal/remote"
	"github.com/evamaren/daybook/internal/store"
)

func fixedNow() time.Time {
	// A Wednesday.
	return time.Date(2026, time.August, 19, 12, 0, 0, 0, time.UTC)
}

func authenticated() remote.SessionSource {
	return remote.SessionFunc(func() (remote.Session, bool) {
		return remote.Session{OwnerID: 1}, true
	})
}

func anonymous() remote.SessionSource {
	return remote.SessionFunc(func() (remote.Session, bool) {
		return remote.Session{}, false
	})
}

type stubEntryWriter struct {
	creates int
	updates int
	deletes int

	lastCreate  models.JournalEntry
	lastChanges remote.EntryChanges
	failWith    error
}

func (stub *stubEntryWriter) CreateEntry(source remote.SessionSource, input models.JournalEntry) (models.JournalEntry, error) {
	stub.creates++
	stub.lastCreate = input
	if stub.failWith != nil {
		return models.JournalEntry{}, stub.failWith
	}
	input.ID = "created-id"
	return input, nil
}

func (stub *stubEntryWriter) UpdateEntry(source remote.SessionSource, id string, changes remote.EntryChanges) (models.JournalEntry, error) {
	stub.updates++
	stub.lastChanges = changes
	if stub.failWith != nil {
		return models.JournalEntry{}, stub.failWith
	}
	entry := models.JournalEntry{ID: id, Energy: models.RatingNeutral, Productivity: models.RatingNeutral}
	if changes.Date != nil {
		entry.Date = *changes.Date
	}
	if changes.Content != nil {
		entry.Content = *changes.Content
	}
	if changes.Energy != nil {
		entry.Energy = *changes.Energy
	}
	if changes.Productivity != nil {
		entry.Productivity = *changes.Productivity
	}
	return entry, nil
}

func (stub *stubEntryWriter) DeleteEntry(source remote.SessionSource, id string) error {
	stub.deletes++
	return stub.failWith
}

func newTestJournalForm(writer *stubEntryWriter, entries *store.Snapshot[models.JournalEntry], sessions remote.SessionSource) *JournalForm {
	return NewJournalForm(JournalFormConfig{
		Writer:   writer,
		Entries:  entries,
		Sessions: sessions,
		Now:      fixedNow,
	})
}

func TestJournalFormDefaults(t *testing.T) {
	form := newTestJournalForm(&stubEntryWriter{}, store.NewSnapshot[models.JournalEntry](), authenticated())

	if form.State() != StateIdle {
		t.Fatalf("expected StateIdle, got %s", form.State())
	}
	draft := form.Draft()
	if draft.Date != "2026-08-19" {
		t.Fatalf("expected today's date, got %q", draft.Date)
	}
	if draft.Energy != models.RatingNeutral || draft.Productivity != models.RatingNeutral {
		t.Fatalf("expected neutral ratings, got %+v", draft)
	}
	if draft.Content != "" {
		t.Fatalf("expected blank content, got %q", draft.Content)
	}
}

func TestJournalFormSettersClampRatings(t *testing.T) {
	form := newTestJournalForm(&stubEntryWriter{}, store.NewSnapshot[models.JournalEntry](), authenticated())

	form.SetEnergy(99)
	form.SetProductivity(-5)

	draft := form.Draft()
	if draft.Energy != models.RatingMax {
		t.Fatalf("expected energy clamped to %d, got %d", models.RatingMax, draft.Energy)
	}
	if draft.Productivity != models.RatingMin {
		t.Fatalf("expected productivity clamped to %d, got %d", models.RatingMin, draft.Productivity)
	}
	if form.State() != StateEditing {
		t.Fatalf("expected editing after a setter, got %s", form.State())
	}
}

func TestJournalFormSubmitRejectsEmptyContent(t *testing.T) {
	writer := &stubEntryWriter{}
	form := newTestJournalForm(writer, store.NewSnapshot[models.JournalEntry](), authenticated())

	_, err := form.Submit()

	var validation *ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if validation.Field != "content" {
		t.Fatalf("expected the content field to fail, got %s", validation.Field)
	}
	if writer.creates != 0 || writer.updates != 0 {
		t.Fatal("validation failures must not reach the writer")
	}
	if form.State() != StateEditing {
		t.Fatalf("expected the form to return to editing, got %s", form.State())
	}
	if form.Message() == "" {
		t.Fatal("expected a user-visible message")
	}
}

func TestJournalFormSubmitCreatesAndSelects(t *testing.T) {
	writer := &stubEntryWriter{}
	entries := store.NewSnapshot[models.JournalEntry]()
	saves := 0
	form := NewJournalForm(JournalFormConfig{
		Writer:   writer,
		Entries:  entries,
		Sessions: authenticated(),
		OnSave:   func() { saves++ },
		Now:      fixedNow,
	})

	form.SetContent("a good day")
	saved, err := form.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if writer.creates != 1 {
		t.Fatalf("expected one create, got %d", writer.creates)
	}
	if saved.ID != "created-id" {
		t.Fatalf("unexpected saved id %q", saved.ID)
	}
	if entries.Selected() != "created-id" {
		t.Fatalf("expected the new entry to be selected, got %q", entries.Selected())
	}
	if stored, found := entries.Get("created-id"); !found || stored.Content != "a good day" {
		t.Fatalf("expected the saved entry in the snapshot, got found=%v %+v", found, stored)
	}
	if form.State() != StateIdle || form.EntryID() != "" {
		t.Fatalf("expected a blank form after creation, state=%s id=%q", form.State(), form.EntryID())
	}
	if saves != 1 {
		t.Fatalf("expected one onSave call, got %d", saves)
	}
}

func TestJournalFormSubmitRequiresSession(t *testing.T) {
	writer := &stubEntryWriter{}
	form := newTestJournalForm(writer, store.NewSnapshot[models.JournalEntry](), anonymous())

	form.SetContent("written while signed out")
	_, err := form.Submit()
	if !errors.Is(err, remote.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if writer.creates != 0 {
		t.Fatal("an unauthenticated submit must not reach the writer")
	}
}

func TestJournalFormLoadMissingFallsBackToBlank(t *testing.T) {
	form := newTestJournalForm(&stubEntryWriter{}, store.NewSnapshot[models.JournalEntry](), authenticated())

	form.Load("does-not-exist")

	if form.EntryID() != "" {
		t.Fatalf("expected no entry id, got %q", form.EntryID())
	}
	if form.State() != StateEditing {
		t.Fatalf("expected editing state, got %s", form.State())
	}
	if form.Message() != "entry not found" {
		t.Fatalf("expected a not-found message, got %q", form.Message())
	}
	if form.Draft().Date != "2026-08-19" {
		t.Fatalf("expected default draft, got %+v", form.Draft())
	}
}

func TestJournalFormEditSubmitsUpdate(t *testing.T) {
	writer := &stubEntryWriter{}
	entries := store.NewSnapshot[models.JournalEntry]()
	entries.ReplaceAll([]models.JournalEntry{
		{ID: "e1", Date: "2026-08-10", Content: "before", Energy: 6, Productivity: 4},
	})
	form := newTestJournalForm(writer, entries, authenticated())

	form.Load("e1")
	form.SetContent("after")
	saved, err := form.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if writer.updates != 1 || writer.creates != 0 {
		t.Fatalf("expected exactly one update, got creates=%d updates=%d", writer.creates, writer.updates)
	}
	if writer.lastChanges.Content == nil || *writer.lastChanges.Content != "after" {
		t.Fatalf("expected the changed content, got %+v", writer.lastChanges)
	}
	if writer.lastChanges.Energy == nil || *writer.lastChanges.Energy != 6 {
		t.Fatalf("expected the loaded energy carried through, got %+v", writer.lastChanges)
	}
	if saved.Content != "after" {
		t.Fatalf("unexpected saved entry: %+v", saved)
	}
	if form.State() != StateEditing || form.EntryID() != "e1" {
		t.Fatalf("an edit should stay on the entry, state=%s id=%q", form.State(), form.EntryID())
	}
	if stored, found := entries.Get("e1"); !found || stored.Content != "after" {
		t.Fatalf("expected the snapshot updated in place, got found=%v %+v", found, stored)
	}
}

func TestJournalFormSubmitFailurePreservesDraft(t *testing.T) {
	writer := &stubEntryWriter{failWith: remote.ErrRemoteUnavailable}
	form := newTestJournalForm(writer, store.NewSnapshot[models.JournalEntry](), authenticated())

	form.SetContent("keep me")
	_, err := form.Submit()
	if !errors.Is(err, remote.ErrRemoteUnavailable) {
		t.Fatalf("expected the writer error, got %v", err)
	}
	if form.Draft().Content != "keep me" {
		t.Fatalf("expected the draft preserved, got %q", form.Draft().Content)
	}
	if form.State() != StateEditing {
		t.Fatalf("expected editing after failure, got %s", form.State())
	}
	if form.Message() == "" {
		t.Fatal("expected a failure message")
	}
}

func TestJournalFormDeleteRequiresConfirmation(t *testing.T) {
	writer := &stubEntryWriter{}
	entries := store.NewSnapshot[models.JournalEntry]()
	entries.ReplaceAll([]models.JournalEntry{{ID: "e1", Date: "2026-08-10", Content: "x"}})
	form := newTestJournalForm(writer, entries, authenticated())

	if err := form.Delete(); !errors.Is(err, ErrNothingToDelete) {
		t.Fatalf("expected ErrNothingToDelete on a blank form, got %v", err)
	}

	form.Load("e1")
	if err := form.Delete(); !errors.Is(err, ErrDeleteNotArmed) {
		t.Fatalf("expected ErrDeleteNotArmed, got %v", err)
	}
	if writer.deletes != 0 {
		t.Fatal("an unarmed delete must not reach the writer")
	}
}

func TestJournalFormDeleteClearsSelection(t *testing.T) {
	writer := &stubEntryWriter{}
	entries := store.NewSnapshot[models.JournalEntry]()
	entries.ReplaceAll([]models.JournalEntry{{ID: "e1", Date: "2026-08-10", Content: "x"}})
	entries.Select("e1")
	form := newTestJournalForm(writer, entries, authenticated())

	form.Load("e1")
	form.ConfirmDelete()
	if err := form.Delete(); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if writer.deletes != 1 {
		t.Fatalf("expected one delete, got %d", writer.deletes)
	}
	if entries.Selected() != "" {
		t.Fatalf("expected the selection cleared, got %q", entries.Selected())
	}
	if _, found := entries.Get("e1"); found {
		t.Fatal("expected the deleted entry removed from the snapshot")
	}
	if form.EntryID() != "" || form.State() != StateIdle {
		t.Fatalf("expected a reset form, state=%s id=%q", form.State(), form.EntryID())
	}
}
