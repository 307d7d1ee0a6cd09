package vectorstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS collections (
	name TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS chunks (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	collection TEXT NOT NULL,
	chunk_id   TEXT NOT NULL,
	text       TEXT NOT NULL,
	embedding  TEXT NOT NULL,
	metadata   TEXT,
	UNIQUE (collection, chunk_id)
);
CREATE INDEX IF NOT EXISTS idx_chunks_collection ON chunks(collection);
`

// SQLiteStore is the persistent engine. Embeddings are stored as JSON
// arrays and similarity is computed in Go over the candidate
// collection, the same brute-force cosine scan the fallback uses.
type SQLiteStore struct {
	db   *sql.DB
	mode string
}

// OpenSQLite opens (or creates) the engine database at dir/vectors.db
// with WAL and a busy timeout for concurrent access.
func OpenSQLite(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory failed: %w", err)
	}
	dbPath := filepath.Join(dir, "vectors.db")
	return openSQLite(dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", ModeSQLite)
}

// OpenSQLitePlain opens the same database without the tuning pragmas.
func OpenSQLitePlain(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create storage directory failed: %w", err)
	}
	return openSQLite(filepath.Join(dir, "vectors.db"), ModeSQLite)
}

// OpenSQLiteMemory opens a non-persistent in-memory engine database.
func OpenSQLiteMemory() (*SQLiteStore, error) {
	return openSQLite(":memory:", ModeSQLiteMemory)
}

func openSQLite(dsn, mode string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite failed: %w", err)
	}
	// The modernc driver is not safe for concurrent writes over
	// multiple connections to the same in-memory database.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sqlite schema failed: %w", err)
	}
	return &SQLiteStore{db: db, mode: mode}, nil
}

func (s *SQLiteStore) GetOrCreate(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO collections (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("create collection failed: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Insert(ctx context.Context, name string, ids, texts []string, embeddings [][]float32, metadatas []map[string]string) error {
	if len(ids) != len(texts) || len(ids) != len(embeddings) {
		return fmt.Errorf("ids, texts and embeddings length mismatch")
	}
	if metadatas != nil && len(metadatas) != len(ids) {
		return fmt.Errorf("metadatas length mismatch")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert tx failed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO collections (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("create collection failed: %w", err)
	}
	for i := range ids {
		embJSON, err := json.Marshal(embeddings[i])
		if err != nil {
			return fmt.Errorf("marshal embedding failed: %w", err)
		}
		var metaJSON []byte
		if metadatas != nil && metadatas[i] != nil {
			metaJSON, err = json.Marshal(metadatas[i])
			if err != nil {
				return fmt.Errorf("marshal metadata failed: %w", err)
			}
		}
		// Delete-then-insert keeps replace semantics and gives the new
		// version a fresh seq, matching the fallback's insertion order.
		if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE collection = ? AND chunk_id = ?`, name, ids[i]); err != nil {
			return fmt.Errorf("replace chunk failed: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chunks (collection, chunk_id, text, embedding, metadata) VALUES (?, ?, ?, ?, ?)`,
			name, ids[i], texts[i], string(embJSON), nullableString(metaJSON),
		); err != nil {
			return fmt.Errorf("insert chunk failed: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert tx failed: %w", err)
	}
	return nil
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func (s *SQLiteStore) Query(ctx context.Context, name string, embedding []float32, topK int) ([]Result, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM collections WHERE name = ?`, name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check collection failed: %w", err)
	}
	if exists == 0 {
		return nil, ErrNotFound
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT chunk_id, text, embedding FROM chunks WHERE collection = ? ORDER BY seq`, name)
	if err != nil {
		return nil, fmt.Errorf("query chunks failed: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var id, text, embJSON string
		if err := rows.Scan(&id, &text, &embJSON); err != nil {
			return nil, fmt.Errorf("scan chunk failed: %w", err)
		}
		var vec []float32
		if err := json.Unmarshal([]byte(embJSON), &vec); err != nil {
			return nil, fmt.Errorf("decode stored embedding failed: %w", err)
		}
		results = append(results, Result{
			ID:       id,
			Text:     text,
			Distance: CosineDistance(embedding, vec),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chunks failed: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if topK < len(results) {
		results = results[:topK]
	}
	if results == nil {
		results = []Result{}
	}
	return results, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM collections ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list collections failed: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan collection name failed: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate collections failed: %w", err)
	}
	return names, nil
}

func (s *SQLiteStore) Clear(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear tx failed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE collection = ?`, name); err != nil {
		return fmt.Errorf("clear chunks failed: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, name); err != nil {
		return fmt.Errorf("clear collection failed: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear tx failed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks`); err != nil {
		return fmt.Errorf("clear chunks failed: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM collections`); err != nil {
		return fmt.Errorf("clear collections failed: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) Mode() string { return s.mode }

func (s *SQLiteStore) Close() error { return s.db.Close() }
