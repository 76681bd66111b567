// Package store indexes finished and running games in SQLite so they can be
// listed and queried without reading replay files.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"euphoria/game"
	"euphoria/gamemaster"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Index wraps a SQLite connection.
type Index struct {
	conn *sqlx.DB
}

type GameRow struct {
	ID       string         `db:"id"`
	Seed     int64          `db:"seed"`
	Players  string         `db:"players"` // comma separated, in seat order
	Started  time.Time      `db:"started"`
	Ended    sql.NullTime   `db:"ended"`
	Winner   sql.NullString `db:"winner"`
	Turns    int            `db:"turns"`
	Steps    int            `db:"steps"`
	Digest   sql.NullInt64  `db:"digest"`
	Revision int            `db:"revision"`
}

type MoveRow struct {
	Game   string `db:"game_id"`
	Step   int    `db:"step"`
	Player string `db:"player"`
	Intent string `db:"intent"`
	Phase  string `db:"phase"`
	Digest int64  `db:"digest"`
}

// Open opens or creates an index at path. ":memory:" works for tests.
func Open(path string) (*Index, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	if path == ":memory:" {
		dsn = path
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	if path == ":memory:" {
		// every connection would get its own database
		conn.SetMaxOpenConns(1)
	}

	idx := &Index{conn: conn}
	if err := idx.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return idx, nil
}

func (idx *Index) Close() error {
	return idx.conn.Close()
}

func (idx *Index) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS games (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		players TEXT NOT NULL,
		revision INTEGER NOT NULL,
		started TIMESTAMP NOT NULL,
		ended TIMESTAMP,
		winner TEXT,
		turns INTEGER NOT NULL DEFAULT 0,
		steps INTEGER NOT NULL DEFAULT 0,
		digest INTEGER
	);

	CREATE TABLE IF NOT EXISTS moves (
		game_id TEXT NOT NULL REFERENCES games(id),
		step INTEGER NOT NULL,
		player TEXT NOT NULL,
		intent TEXT NOT NULL,
		phase TEXT NOT NULL,
		digest INTEGER NOT NULL,
		PRIMARY KEY (game_id, step)
	);

	CREATE INDEX IF NOT EXISTS idx_games_winner ON games(winner);
	CREATE INDEX IF NOT EXISTS idx_games_started ON games(started);
	`
	_, err := idx.conn.Exec(schema)
	return err
}

// Recorder returns a recorder that indexes one game at a time. Each
// concurrently running game needs its own.
func (idx *Index) Recorder() gamemaster.Recorder {
	return &recorder{idx: idx}
}

type recorder struct {
	idx *Index
	id  string
}

func (r *recorder) Start(id string, opts game.Options) error {
	r.id = id
	_, err := r.idx.conn.Exec(
		`INSERT INTO games (id, seed, players, revision, started) VALUES (?, ?, ?, ?, ?)`,
		id, int64(opts.Seed), strings.Join(opts.Players, ","), opts.Revision, time.Now().UTC(),
	)
	return err
}

func (r *recorder) Record(u gamemaster.Update) error {
	intent, err := u.Intent.MarshalJSON()
	if err != nil {
		return err
	}
	tx, err := r.idx.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO moves (game_id, step, player, intent, phase, digest) VALUES (?, ?, ?, ?, ?, ?)`,
		u.Game, u.Step, u.Player, string(intent), u.Prompt.Phase.String(), int64(u.Digest),
	); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE games SET steps = ? WHERE id = ?`, u.Step, u.Game); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *recorder) Finish(gs *game.GameState) error {
	if r.id == "" {
		return errors.New("finish before start")
	}
	_, err := r.idx.conn.Exec(
		`UPDATE games SET ended = ?, winner = ?, turns = ?, digest = ? WHERE id = ?`,
		time.Now().UTC(), gs.Winner(), gs.Turns, int64(gs.Digest()), r.id,
	)
	return err
}

// Game loads one game.
func (idx *Index) Game(id string) (GameRow, error) {
	var row GameRow
	err := idx.conn.Get(&row, `SELECT * FROM games WHERE id = ?`, id)
	return row, err
}

// Games lists the most recently started games first.
func (idx *Index) Games(limit int) ([]GameRow, error) {
	var rows []GameRow
	err := idx.conn.Select(&rows, `SELECT * FROM games ORDER BY started DESC LIMIT ?`, limit)
	return rows, err
}

// Moves lists the recorded intents of a game in order.
func (idx *Index) Moves(id string) ([]MoveRow, error) {
	var rows []MoveRow
	err := idx.conn.Select(&rows, `SELECT * FROM moves WHERE game_id = ? ORDER BY step`, id)
	return rows, err
}

// Wins counts finished games per winner.
func (idx *Index) Wins() (map[string]int, error) {
	var rows []struct {
		Winner string `db:"winner"`
		N      int    `db:"n"`
	}
	if err := idx.conn.Select(&rows, `SELECT winner, COUNT(*) AS n FROM games WHERE winner IS NOT NULL GROUP BY winner`); err != nil {
		return nil, err
	}
	wins := make(map[string]int, len(rows))
	for _, r := range rows {
		wins[r.Winner] = r.N
	}
	return wins, nil
}
