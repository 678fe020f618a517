package sessions

// Repo defines the session store shared by the auth server and the issue client.
type Repo interface {
	// Load returns the full mapping. Read failures are logged and yield an empty store.
	Load() Store

	// Save replaces the full mapping
	Save(store Store) error

	// Upsert inserts or replaces a single session
	Upsert(session Session) error

	// Get retrieves a session by ID
	Get(sessionID string) (Session, error)
}
