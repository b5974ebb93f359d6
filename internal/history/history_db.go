// Package history records mutation attempts in a local SQLite database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/carcli/internal/config"
	"github.com/studiowebux/carcli/internal/migrations"
	"github.com/studiowebux/carcli/internal/types"
)

// DefaultLimit is how many entries Load returns when limit <= 0
const DefaultLimit = 200

const timestampLayout = "2006-01-02 15:04:05"

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	// Run database migrations
	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Record stores one mutation attempt. A zero Timestamp means now.
func (m *Manager) Record(entry types.HistoryEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query := `
		INSERT INTO mutations (timestamp, op, car_id, label, duration_ms, error, profile_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := m.db.Exec(query,
		ts.Local().Format(timestampLayout),
		string(entry.Op),
		nullString(entry.CarID),
		entry.Label,
		entry.Duration,
		nullString(entry.Error),
		entry.Profile,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}
	return nil
}

// Load returns the newest entries for a profile ("" matches entries without one)
func (m *Manager) Load(profileName string, limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := `
		SELECT id, timestamp, op, COALESCE(car_id, ''), label, duration_ms,
		       COALESCE(error, ''), COALESCE(profile_name, '')
		FROM mutations
		WHERE profile_name = ? OR (profile_name IS NULL AND ? = '')
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, profileName, profileName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

// LoadForCar returns every entry touching carID, newest first
func (m *Manager) LoadForCar(carID string) ([]types.HistoryEntry, error) {
	query := `
		SELECT id, timestamp, op, COALESCE(car_id, ''), label, duration_ms,
		       COALESCE(error, ''), COALESCE(profile_name, '')
		FROM mutations
		WHERE car_id = ?
		ORDER BY timestamp DESC, id DESC
	`

	rows, err := m.db.Query(query, carID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for car: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

func (m *Manager) scanEntries(rows *sql.Rows) ([]types.HistoryEntry, error) {
	entries := []types.HistoryEntry{}

	for rows.Next() {
		var entry types.HistoryEntry
		var timestamp string
		var op string

		if err := rows.Scan(
			&entry.ID,
			&timestamp,
			&op,
			&entry.CarID,
			&entry.Label,
			&entry.Duration,
			&entry.Error,
			&entry.Profile,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		entry.Op = types.MutationOp(op)
		entry.Timestamp = parseTimestamp(timestamp)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// parseTimestamp reads the stored local time, falling back to RFC3339
func parseTimestamp(s string) time.Time {
	if t, err := time.ParseInLocation(timestampLayout, s, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (m *Manager) Clear() error {
	_, err := m.db.Exec("DELETE FROM mutations")
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func (m *Manager) Delete(id int64) error {
	_, err := m.db.Exec("DELETE FROM mutations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	return nil
}

func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM mutations").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get history count: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
