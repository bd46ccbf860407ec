package challenge

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/robalobadob/wordsarehard/internal/game"
)

// Entry describes a challenge without revealing its words.
type Entry struct {
	Name     string `json:"name"`
	Rounds   int    `json:"rounds"`
	Tutorial bool   `json:"tutorial"`
	Builtin  bool   `json:"builtin"`
	AuthorID string `json:"authorId,omitempty"`
}

// Store persists user-authored challenges in the challenges table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert stores a validated challenge. A taken name yields ErrExists.
func (s *Store) Insert(ctx context.Context, name, authorID string, rounds []game.ChallengeInstruction) error {
	body, err := json.Marshal(encodeRounds(rounds))
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO challenges(name, author_id, rounds, body, created_at) VALUES(?,?,?,?,?)`,
		name, authorID, len(rounds), string(body), time.Now().UTC().Format(time.RFC3339),
	)
	if isConstraint(err, sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique) {
		return fmt.Errorf("%w: %q", ErrExists, name)
	}
	return err
}

func isConstraint(err error, codes ...sqlite3.ErrNoExtended) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	for _, c := range codes {
		if se.ExtendedCode == c {
			return true
		}
	}
	return false
}

// Get loads and re-validates a stored challenge.
func (s *Store) Get(ctx context.Context, name string) ([]game.ChallengeInstruction, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM challenges WHERE name=?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return DecodeRounds(name, []byte(body))
}

// List returns stored challenges ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, author_id, rounds FROM challenges ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.AuthorID, &e.Rounds); err != nil {
			return nil, err
		}
		e.Tutorial = IsTutorial(e.Name)
		out = append(out, e)
	}
	return out, rows.Err()
}
