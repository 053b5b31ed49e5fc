package storage

import (
	"fmt"
)

// WordCount is how often a target word has been completed.
type WordCount struct {
	Word  string
	Count int
}

// RecordMatchedWords adds one to the count of each word. A word listed
// twice counts twice.
func (s *Store) RecordMatchedWords(gameID string, words []string) error {
	if len(words) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.Prepare(
		`INSERT INTO matched_words (game_id, word, count) VALUES (?, ?, 1)
		 ON CONFLICT(game_id, word) DO UPDATE SET
		   count = count + 1,
		   last_matched = CURRENT_TIMESTAMP`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare word update: %w", err)
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.Exec(gameID, w); err != nil {
			return fmt.Errorf("storage: cannot record word %q: %w", w, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit words: %w", err)
	}
	return nil
}

// TopWords returns the most matched words for a game, most frequent first.
func (s *Store) TopWords(gameID string, limit int) ([]WordCount, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT word, count FROM matched_words
		 WHERE game_id = ?
		 ORDER BY count DESC, word ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query words: %w", err)
	}
	defer rows.Close()

	var out []WordCount
	for rows.Next() {
		var wc WordCount
		if err := rows.Scan(&wc.Word, &wc.Count); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, wc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
