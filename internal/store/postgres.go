package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"lessonloop/internal/models"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore keeps the serialized run list in a single row of an
// app_state table, one blob per slot key. The schema is created on
// open; there is nothing else to migrate.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS app_state (
			slot TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create app_state table: %w", err)
	}

	log.Println("Database connection established")
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Load() ([]models.ClassRun, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM app_state WHERE slot = $1`, slotKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state slot: %w", err)
	}
	return decodeRuns(data), nil
}

func (s *PostgresStore) Save(runs []models.ClassRun) error {
	data, err := encodeRuns(runs)
	if err != nil {
		return fmt.Errorf("failed to encode runs: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO app_state (slot, data, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (slot) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`, slotKey, data)
	if err != nil {
		return fmt.Errorf("failed to save state slot: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
