package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/shopsearch/internal/adapters/driven/storage/codec"
	"github.com/custodia-labs/shopsearch/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/shopsearch/internal/core/domain"
	"github.com/custodia-labs/shopsearch/internal/core/ports/driven"
	"github.com/custodia-labs/shopsearch/internal/logger"
)

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "shopsearch.db"

// Store is a unified SQLite-based storage that provides access to
// the profile and query log stores through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.shopsearch/data/shopsearch.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".shopsearch", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets the TUI autosave while a CLI command reads.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ProfileStore returns a ProfileStore interface backed by this store.
func (s *Store) ProfileStore() driven.ProfileStore {
	return &profileStore{store: s}
}

// QueryLogStore returns a QueryLogStore interface backed by this store.
func (s *Store) QueryLogStore() driven.QueryLogStore {
	return &queryLogStore{store: s}
}

// SchemaVersion returns the highest applied migration.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting current version: %w", err)
	}
	return version, nil
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.SchemaVersion(context.Background())
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_profiles.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(script); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ==================== Profile Store ====================

// profileStore implements driven.ProfileStore.
type profileStore struct {
	store *Store
}

var _ driven.ProfileStore = (*profileStore)(nil)

// Save stores or replaces a profile.
func (s *profileStore) Save(ctx context.Context, snapshot domain.ProfileSnapshot) error {
	if snapshot.UserID == "" {
		return fmt.Errorf("saving profile: %w", domain.ErrInvalidInput)
	}

	data, err := codec.EncodeProfile(snapshot)
	if err != nil {
		return err
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO profiles (user_id, data, saved_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			data = excluded.data,
			saved_at = excluded.saved_at,
			updated_at = excluded.updated_at
	`, snapshot.UserID, string(data), formatTime(snapshot.SavedAt), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// Get retrieves a profile by user ID.
func (s *profileStore) Get(ctx context.Context, userID string) (*domain.ProfileSnapshot, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT data FROM profiles WHERE user_id = ?", userID)

	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}

	snapshot, err := codec.DecodeProfile([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("decoding profile %s: %w", userID, err)
	}
	return &snapshot, nil
}

// List returns every stored profile, ordered by user ID. Profiles that
// cannot be decoded are logged and skipped.
func (s *profileStore) List(ctx context.Context) ([]domain.ProfileSnapshot, error) {
	rows, err := s.store.db.QueryContext(ctx, "SELECT user_id, data FROM profiles ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var snapshots []domain.ProfileSnapshot
	for rows.Next() {
		var userID, data string
		if err := rows.Scan(&userID, &data); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		snapshot, err := codec.DecodeProfile([]byte(data))
		if err != nil {
			logger.Warn("Skipping profile %s: %v", userID, err)
			continue
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return snapshots, nil
}

// Delete removes a profile.
func (s *profileStore) Delete(ctx context.Context, userID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM profiles WHERE user_id = ?", userID)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return nil
}

// ==================== Query Log Store ====================

// queryLogStore implements driven.QueryLogStore.
type queryLogStore struct {
	store *Store
}

var _ driven.QueryLogStore = (*queryLogStore)(nil)

// SaveQueryLog replaces the stored log.
func (s *queryLogStore) SaveQueryLog(ctx context.Context, snapshot domain.QueryLogSnapshot) error {
	now := time.Now()
	data, err := codec.EncodeQueryLog(snapshot, now)
	if err != nil {
		return err
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO query_log (id, data, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`, string(data), formatTime(now))
	if err != nil {
		return fmt.Errorf("saving query log: %w", err)
	}
	return nil
}

// LoadQueryLog returns the stored log, or an empty snapshot.
func (s *queryLogStore) LoadQueryLog(ctx context.Context) (domain.QueryLogSnapshot, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT data FROM query_log WHERE id = 1")

	var data string
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.QueryLogSnapshot{}, nil
		}
		return domain.QueryLogSnapshot{}, fmt.Errorf("scanning query log: %w", err)
	}

	snapshot, err := codec.DecodeQueryLog([]byte(data))
	if err != nil {
		return domain.QueryLogSnapshot{}, fmt.Errorf("decoding query log: %w", err)
	}
	return snapshot, nil
}

// ==================== Helper Functions ====================

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
