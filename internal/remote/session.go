package remote

// Session identifies the authenticated owner of a write.
type Session struct {
	OwnerID uint
}

// SessionSource resolves the current session. Auth state can change
// asynchronously between form mount and submit, so the adapter consults the
// source again immediately before every write instead of trusting a session
// captured earlier.
type SessionSource interface {
	CurrentSession() (Session, bool)
}

// SessionFunc adapts a plain function to a SessionSource.
type SessionFunc func() (Session, bool)

func (fn SessionFunc) CurrentSession() (Session, bool) {
	return fn()
}
