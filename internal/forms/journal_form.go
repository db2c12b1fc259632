package forms

import (
	"time"

	"github.com/evamaren/daybook/internal/models"
	"github.com/evamaren/daybook/internal/remote"
)

// EntryStore is the slice of the entity store the journal form needs: lazy
// lookup of the edited entry, local mutation after a confirmed write, and
// the active selection.
type EntryStore interface {
	Get(id string) (models.JournalEntry, bool)
	Add(entry models.JournalEntry)
	Update(entry models.JournalEntry)
	Remove(id string)
	Select(id string)
}

// EntryWriter is the slice of the remote sync adapter the journal form needs.
type EntryWriter interface {
	CreateEntry(source remote.SessionSource, input models.JournalEntry) (models.JournalEntry, error)
	UpdateEntry(source remote.SessionSource, id string, changes remote.EntryChanges) (models.JournalEntry, error)
	DeleteEntry(source remote.SessionSource, id string) error
}

type JournalDraft struct {
	Date         string
	Content      string
	Energy       int
	Productivity int
}

// JournalForm owns transient draft state for one journal entry, validates it,
// and submits through the remote sync adapter. It is not safe for concurrent
// use; each form instance belongs to one editing flow.
type JournalForm struct {
	writer   EntryWriter
	entries  EntryStore
	sessions remote.SessionSource
	onSave   func()
	now      func() time.Time

	state       State
	entryID     string
	draft       JournalDraft
	message     string
	deleteArmed bool
}

type JournalFormConfig struct {
	Writer   EntryWriter
	Entries  EntryStore
	Sessions remote.SessionSource
	OnSave   func()
	Now      func() time.Time
}

func NewJournalForm(config JournalFormConfig) *JournalForm {
	form := &JournalForm{
		writer:   config.Writer,
		entries:  config.Entries,
		sessions: config.Sessions,
		onSave:   config.OnSave,
		now:      config.Now,
	}
	if form.now == nil {
		form.now = time.Now
	}
	form.resetDraft()
	return form
}

func (form *JournalForm) State() State {
	return form.state
}

func (form *JournalForm) Draft() JournalDraft {
	return form.draft
}

func (form *JournalForm) EntryID() string {
	return form.entryID
}

// Message returns the user-visible validation or failure message, if any.
func (form *JournalForm) Message() string {
	return form.message
}

func (form *JournalForm) resetDraft() {
	form.state = StateIdle
	form.entryID = ""
	form.deleteArmed = false
	form.draft = JournalDraft{
		Date:         todayFor(form.now),
		Content:      "",
		Energy:       models.RatingNeutral,
		Productivity: models.RatingNeutral,
	}
}

// Load pulls an existing entry into the draft. A missing entry is not an
// error: the form reports it and falls back to composing a new entry.
func (form *JournalForm) Load(id string) {
	if id == "" {
		form.resetDraft()
		form.message = ""
		return
	}

	form.state = StateLoading
	entry, found := form.entries.Get(id)
	if !found {
		form.resetDraft()
		form.state = StateEditing
		form.message = "entry not found"
		return
	}

	form.entryID = entry.ID
	form.draft = JournalDraft{
		Date:         entry.Date,
		Content:      entry.Content,
		Energy:       entry.Energy,
		Productivity: entry.Productivity,
	}
	form.state = StateEditing
	form.message = ""
}

// LoadEntry seeds the draft from an already fetched entry.
func (form *JournalForm) LoadEntry(entry models.JournalEntry) {
	form.entryID = entry.ID
	form.draft = JournalDraft{
		Date:         entry.Date,
		Content:      entry.Content,
		Energy:       entry.Energy,
		Productivity: entry.Productivity,
	}
	form.state = StateEditing
	form.message = ""
}

func (form *JournalForm) SetDate(value string) {
	form.draft.Date = value
	form.touch()
}

func (form *JournalForm) SetContent(value string) {
	form.draft.Content = value
	form.touch()
}

func (form *JournalForm) SetEnergy(value int) {
	form.draft.Energy = models.ClampRating(value)
	form.touch()
}

func (form *JournalForm) SetProductivity(value int) {
	form.draft.Productivity = models.ClampRating(value)
	form.touch()
}

func (form *JournalForm) touch() {
	if form.state == StateIdle {
		form.state = StateEditing
	}
}

func (form *JournalForm) validate() *ValidationError {
	if form.draft.Content == "" {
		return &ValidationError{Field: "content", Reason: "write something about your day"}
	}
	if !validDate(form.draft.Date) {
		return &ValidationError{Field: "date", Reason: "invalid date"}
	}
	return nil
}

// Submit validates the draft and creates or updates the entry. Validation
// failures never reach the adapter. On success the saved entry is applied to
// the local snapshot: a creation form adds it, resets to a blank draft and
// selects it; an edit form updates it in place and stays on the refreshed
// data. Either way the onSave callback fires.
func (form *JournalForm) Submit() (models.JournalEntry, error) {
	if form.state == StateSubmitting {
		return models.JournalEntry{}, ErrSubmitInProgress
	}
	form.state = StateSubmitting

	if form.draft.Date == "" {
		form.draft.Date = todayFor(form.now)
	}
	form.draft.Energy = models.ClampRating(form.draft.Energy)
	form.draft.Productivity = models.ClampRating(form.draft.Productivity)

	if validationErr := form.validate(); validationErr != nil {
		form.message = validationErr.Error()
		form.state = StateEditing
		return models.JournalEntry{}, validationErr
	}

	if _, ok := form.sessions.CurrentSession(); !ok {
		form.message = "you must be signed in to save entries"
		form.state = StateEditing
		return models.JournalEntry{}, remote.ErrNotAuthenticated
	}

	creating := form.entryID == ""
	var saved models.JournalEntry
	var err error
	if creating {
		saved, err = form.writer.CreateEntry(form.sessions, models.JournalEntry{
			Date:         form.draft.Date,
			Content:      form.draft.Content,
			Energy:       form.draft.Energy,
			Productivity: form.draft.Productivity,
		})
	} else {
		changes := remote.EntryChanges{
			Date:         &form.draft.Date,
			Content:      &form.draft.Content,
			Energy:       &form.draft.Energy,
			Productivity: &form.draft.Productivity,
		}
		saved, err = form.writer.UpdateEntry(form.sessions, form.entryID, changes)
	}
	if err != nil {
		form.message = "failed to save entry"
		form.state = StateEditing
		return models.JournalEntry{}, err
	}

	if creating {
		if form.entries != nil {
			form.entries.Add(saved)
			form.entries.Select(saved.ID)
		}
		form.resetDraft()
	} else {
		if form.entries != nil {
			form.entries.Update(saved)
		}
		form.LoadEntry(saved)
	}
	form.message = ""

	if form.onSave != nil {
		form.onSave()
	}
	return saved, nil
}

// ConfirmDelete arms the destructive path; Delete refuses until it is called.
func (form *JournalForm) ConfirmDelete() {
	form.deleteArmed = true
}

// Delete removes the loaded entry. It is only available once an existing
// entry is being edited, and only after ConfirmDelete.
func (form *JournalForm) Delete() error {
	if form.entryID == "" {
		return ErrNothingToDelete
	}
	if !form.deleteArmed {
		return ErrDeleteNotArmed
	}

	if err := form.writer.DeleteEntry(form.sessions, form.entryID); err != nil {
		form.message = "failed to delete entry"
		return err
	}

	if form.entries != nil {
		form.entries.Remove(form.entryID)
	}
	form.resetDraft()
	form.message = ""

	if form.onSave != nil {
		form.onSave()
	}
	return nil
}
