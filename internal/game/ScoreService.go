package game

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

const scoresTableName = "saver_scores"

// SessionScore is one finished session as persisted by ScoreService.
type SessionScore struct {
	ID        int
	Score     int
	Length    int
	GameNo    int
	CreatedAt time.Time
}

// ScoreService persists finished-session scores to sqlite. A nil service is
// valid everywhere and simply skips persistence.
type ScoreService struct {
	db *sql.DB
}

func NewScoreService(dbPath string) (*ScoreService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening score database: %w", err)
	}

	service := &ScoreService{db: db}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return service, nil
}

func (serviceImpl *ScoreService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + scoresTableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		score INTEGER NOT NULL,
		length INTEGER NOT NULL,
		game_no INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := serviceImpl.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	return nil
}

func (serviceImpl *ScoreService) SaveScore(score, length, gameNo int) error {
	if serviceImpl == nil {
		return nil
	}
	const insertSQL = `
	INSERT INTO ` + scoresTableName + ` (score, length, game_no)
	VALUES (?, ?, ?);`

	if _, err := serviceImpl.db.Exec(insertSQL, score, length, gameNo); err != nil {
		return fmt.Errorf("failed to insert session score: %w", err)
	}
	return nil
}

// TopScores retrieves the best finished sessions, highest score first.
func (serviceImpl *ScoreService) TopScores(limit int) ([]SessionScore, error) {
	if serviceImpl == nil {
		return nil, nil
	}
	const selectSQL = `
	SELECT id, score, length, game_no, created_at
	FROM ` + scoresTableName + `
	ORDER BY score DESC, length DESC
	LIMIT ?;`

	rows, err := serviceImpl.db.Query(selectSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top scores: %w", err)
	}
	defer rows.Close()

	var scores []SessionScore
	for rows.Next() {
		var score SessionScore
		var createdAt string
		if err := rows.Scan(&score.ID, &score.Score, &score.Length, &score.GameNo, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		parsedCreatedAt, err := time.Parse(time.RFC3339, createdAt)
		if err == nil {
			score.CreatedAt = parsedCreatedAt
		} else {
			log.Debug("score row has unparseable created_at", "id", score.ID, "raw", createdAt)
		}
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return scores, nil
}

func (serviceImpl *ScoreService) TotalCount() (int, error) {
	if serviceImpl == nil {
		return 0, nil
	}
	const countSQL = `SELECT COUNT(*) FROM ` + scoresTableName + `;`
	var count int
	if err := serviceImpl.db.QueryRow(countSQL).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}

func (serviceImpl *ScoreService) Close() error {
	if serviceImpl == nil {
		return nil
	}
	return serviceImpl.db.Close()
}
