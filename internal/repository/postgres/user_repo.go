package postgres

import (
	"database/sql"
	"fmt"
	"time"
)

type UserRepo struct {
	DB *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

type User struct {
	ID           int64
	Username     string
	Email        sql.NullString
	GoogleID     sql.NullString
	PasswordHash string
	GamesPlayed  int
	GamesWon     int
	GamesDrawn   int
	CreatedAt    time.Time
}

// PlayerStats is one leaderboard row.
type PlayerStats struct {
	Rank        int     `json:"rank"`
	Username    string  `json:"username"`
	GamesPlayed int     `json:"games_played"`
	GamesWon    int     `json:"games_won"`
	WinRate     float64 `json:"win_rate"`
}

const userColumns = `id, username, email, google_id, password_hash, games_played, games_won, games_drawn, created_at`

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.GoogleID, &u.PasswordHash,
		&u.GamesPlayed, &u.GamesWon, &u.GamesDrawn, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %v", err)
	}
	return &u, nil
}

func (r *UserRepo) CreateUser(username, passwordHash, email, googleID string) (int64, error) {
	var emailParam, googleIDParam interface{}
	if email != "" {
		emailParam = email
	}
	if googleID != "" {
		googleIDParam = googleID
	}

	var id int64
	err := r.DB.QueryRow(`
		INSERT INTO players (username, password_hash, email, google_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id;`,
		username, passwordHash, emailParam, googleIDParam).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %v", err)
	}
	return id, nil
}

func (r *UserRepo) GetUserByUsername(username string) (*User, error) {
	return scanUser(r.DB.QueryRow(
		`SELECT `+userColumns+` FROM players WHERE username = $1;`, username))
}

func (r *UserRepo) GetUserByID(id int64) (*User, error) {
	return scanUser(r.DB.QueryRow(
		`SELECT `+userColumns+` FROM players WHERE id = $1;`, id))
}

func (r *UserRepo) GetUserByGoogleID(googleID string) (*User, error) {
	return scanUser(r.DB.QueryRow(
		`SELECT `+userColumns+` FROM players WHERE google_id = $1;`, googleID))
}

// RecordResult bumps the aggregate counters after a finished game.
// Only totals are kept; individual games are never persisted.
func (r *UserRepo) RecordResult(userID int64, won, drawn bool) error {
	_, err := r.DB.Exec(`
		UPDATE players
		SET games_played = games_played + 1,
		    games_won    = games_won + CASE WHEN $2 THEN 1 ELSE 0 END,
		    games_drawn  = games_drawn + CASE WHEN $3 THEN 1 ELSE 0 END
		WHERE id = $1;`,
		userID, won, drawn)
	if err != nil {
		return fmt.Errorf("failed to record result: %v", err)
	}
	return nil
}

// Leaderboard returns the top players ordered by wins, then win rate.
func (r *UserRepo) Leaderboard(limit int) ([]PlayerStats, error) {
	rows, err := r.DB.Query(`
		SELECT username, games_played, games_won
		FROM players
		WHERE games_played > 0
		ORDER BY games_won DESC, games_played ASC, username ASC
		LIMIT $1;`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %v", err)
	}
	defer rows.Close()

	var stats []PlayerStats
	rank := 0
	for rows.Next() {
		rank++
		s := PlayerStats{Rank: rank}
		if err := rows.Scan(&s.Username, &s.GamesPlayed, &s.GamesWon); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %v", err)
		}
		if s.GamesPlayed > 0 {
			s.WinRate = float64(s.GamesWon) / float64(s.GamesPlayed)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
