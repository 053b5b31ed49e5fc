package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/wordris/internal/multiplayer"
)

// RaceResult represents the outcome of a head-to-head race.
type RaceResult struct {
	ID            int64
	RaceID        string
	PackID        string
	Player1       string
	Player2       string
	Score1        int
	Score2        int
	WinnerSession string // Empty on a draw
	EndReason     string // "completed", "left", "disconnect"
	Duration      time.Duration
	CreatedAt     time.Time
}

const raceColumns = `id, race_id, pack_id, player1, player2,
		score1, score2, winner_session, end_reason, duration_ms, created_at`

// SaveRace records the result of a race.
// Returns the ID of the inserted record.
func (s *Store) SaveRace(result RaceResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO race_results
		 (race_id, pack_id, player1, player2, score1, score2, winner_session, end_reason, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.RaceID,
		result.PackID,
		result.Player1,
		result.Player2,
		result.Score1,
		result.Score2,
		result.WinnerSession,
		result.EndReason,
		result.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save race: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RaceByID retrieves a race by its race ID. Returns nil if there is none.
func (s *Store) RaceByID(raceID string) (*RaceResult, error) {
	row := s.db.QueryRow(`SELECT `+raceColumns+` FROM race_results WHERE race_id = ?`, raceID)
	result, err := scanRace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query race: %w", err)
	}
	return &result, nil
}

// RecentRaces retrieves the most recent races.
func (s *Store) RecentRaces(limit int) ([]RaceResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRaces(
		`SELECT `+raceColumns+` FROM race_results
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// PlayerRaces retrieves race history for a specific session.
func (s *Store) PlayerRaces(sessionID string, limit int) ([]RaceResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRaces(
		`SELECT `+raceColumns+` FROM race_results
		 WHERE player1 = ? OR player2 = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		sessionID, sessionID, limit,
	)
}

func (s *Store) queryRaces(query string, args ...any) ([]RaceResult, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query races: %w", err)
	}
	defer rows.Close()

	var results []RaceResult
	for rows.Next() {
		result, err := scanRace(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRace(row rowScanner) (RaceResult, error) {
	var result RaceResult
	var winner sql.NullString
	var durationMS int64
	var createdAt any

	err := row.Scan(
		&result.ID,
		&result.RaceID,
		&result.PackID,
		&result.Player1,
		&result.Player2,
		&result.Score1,
		&result.Score2,
		&winner,
		&result.EndReason,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return RaceResult{}, err
	}

	if winner.Valid {
		result.WinnerSession = winner.String
	}
	result.Duration = time.Duration(durationMS) * time.Millisecond
	result.CreatedAt = parseTime(createdAt)
	return result, nil
}

// SaveRaceResult implements multiplayer.RaceResultSaver.
// This adapter allows the matchmaker to save results without direct storage dependency.
func (s *Store) SaveRaceResult(data multiplayer.RaceResultData) error {
	_, err := s.SaveRace(RaceResult{
		RaceID:        data.RaceID,
		PackID:        data.PackID,
		Player1:       data.Player1,
		Player2:       data.Player2,
		Score1:        data.Score1,
		Score2:        data.Score2,
		WinnerSession: data.WinnerSession,
		EndReason:     data.EndReason,
		Duration:      data.Duration,
	})
	return err
}

// Ensure Store implements RaceResultSaver
var _ multiplayer.RaceResultSaver = (*Store)(nil)
