// Package persistence stores save slots and the event journal in SQLite.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/narcosim/internal/config"
	"github.com/talgya/narcosim/internal/engine"
)

// ErrGameNotFound is returned when a save slot does not exist.
var ErrGameNotFound = errors.New("game not found")

// MetaActiveGame is the meta key holding the id of the game the CLI plays.
const MetaActiveGame = "active_game"

// DB wraps a SQLite connection for save games.
type DB struct {
	conn *sqlx.DB
}

// GameSummary is one row of the save slot listing.
type GameSummary struct {
	ID        string  `db:"id" json:"id"`
	Seed      int64   `db:"seed" json:"seed"`
	Day       int     `db:"day" json:"day"`
	Region    string  `db:"region" json:"region"`
	Cash      float64 `db:"cash" json:"cash"`
	GameOver  string  `db:"game_over" json:"game_over,omitempty"`
	Won       bool    `db:"won" json:"won"`
	CreatedAt int64   `db:"created_at" json:"created_at"`
	UpdatedAt int64   `db:"updated_at" json:"updated_at"`
}

// Updated returns the last save time.
func (s GameSummary) Updated() time.Time { return time.Unix(s.UpdatedAt, 0) }

// JournalEntry is one line of a game's event log.
type JournalEntry struct {
	Day     int    `db:"day" json:"day"`
	Message string `db:"message" json:"message"`
}

// NewGameID returns a fresh save slot id.
func NewGameID() string {
	return uuid.NewString()
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		day INTEGER NOT NULL,
		region TEXT NOT NULL,
		cash REAL NOT NULL,
		game_over TEXT NOT NULL DEFAULT '',
		won INTEGER NOT NULL DEFAULT 0,
		state TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		message TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_journal_game ON journal(game_id, id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveGame writes the full game state into slot id, creating it if needed.
func (db *DB) SaveGame(id string, g *engine.Game) error {
	data, err := g.MarshalState()
	if err != nil {
		return err
	}
	st := g.State
	now := time.Now().Unix()

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO games
		(id, seed, day, region, cash, game_over, won, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			day = excluded.day,
			region = excluded.region,
			cash = excluded.cash,
			game_over = excluded.game_over,
			won = excluded.won,
			state = excluded.state,
			updated_at = excluded.updated_at`,
		id, st.Seed, st.Day, st.CurrentRegion, st.Player.Cash(), st.GameOver, st.Won,
		string(data), now, now,
	)
	if err != nil {
		return fmt.Errorf("save game %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("game saved", "id", id, "day", st.Day, "bytes", len(data))
	return nil
}

// LoadGame restores the game in slot id under cfg.
func (db *DB) LoadGame(id string, cfg config.Config, logger *slog.Logger) (*engine.Game, error) {
	var data string
	err := db.conn.Get(&data, "SELECT state FROM games WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	g, err := engine.Restore(cfg, []byte(data), logger)
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	return g, nil
}

// GetGame returns the summary row of slot id.
func (db *DB) GetGame(id string) (GameSummary, error) {
	var s GameSummary
	err := db.conn.Get(&s, `SELECT id, seed, day, region, cash, game_over, won, created_at, updated_at
		FROM games WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return s, fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	return s, err
}

// ListGames returns all save slots, most recently played first.
func (db *DB) ListGames() ([]GameSummary, error) {
	var games []GameSummary
	err := db.conn.Select(&games, `SELECT id, seed, day, region, cash, game_over, won, created_at, updated_at
		FROM games ORDER BY updated_at DESC, id`)
	return games, err
}

// DeleteGame removes a save slot and its journal.
func (db *DB) DeleteGame(id string) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM games WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrGameNotFound, id)
	}
	if _, err := tx.Exec("DELETE FROM journal WHERE game_id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// AppendJournal appends lines recorded on day to a game's journal.
func (db *DB) AppendJournal(id string, day int, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, line := range lines {
		_, err := tx.Exec(
			"INSERT INTO journal (game_id, day, message) VALUES (?, ?, ?)",
			id, day, line,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentJournal returns the last limit journal lines of a game, oldest first.
func (db *DB) RecentJournal(id string, limit int) ([]JournalEntry, error) {
	var entries []JournalEntry
	err := db.conn.Select(&entries, `SELECT day, message FROM (
			SELECT id, day, message FROM journal WHERE game_id = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id`,
		id, limit,
	)
	return entries, err
}

// SaveMeta stores a key-value pair.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value. A missing key returns "" and no error.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}
