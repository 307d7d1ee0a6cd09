package vectorstore

import "log"

// Open returns a usable Store, degrading through engine modes the way
// the retrieval layer expects: file-backed with tuning pragmas, then
// file-backed with defaults, then an in-memory engine, then the
// in-process fallback. Failures along the chain are logged and
// non-fatal; the final step cannot fail.
func Open(dir string) Store {
	store, err := OpenSQLite(dir)
	if err == nil {
		return store
	}
	log.Printf("vectorstore: persistent engine failed, trying plain file mode: %v", err)

	store, err = OpenSQLitePlain(dir)
	if err == nil {
		return store
	}
	log.Printf("vectorstore: plain file mode failed, trying in-memory engine: %v", err)

	store, err = OpenSQLiteMemory()
	if err == nil {
		log.Printf("vectorstore: using in-memory engine; data will not persist between restarts")
		return store
	}
	log.Printf("vectorstore: in-memory engine failed, using in-process fallback: %v", err)

	return NewMemoryStore()
}
