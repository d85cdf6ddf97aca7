package session

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/nowme-app/nowme-server/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

const (
	keyText   = "text"
	keyResult = "result"
)

// PostgresStore keeps session data in a single key-value table.
type PostgresStore struct {
	db *sql.DB
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func NewPostgresStore(config DatabaseConfig) (*PostgresStore, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %v", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %v", err)
	}
	return store, nil
}

func (s *PostgresStore) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %v", err)
	}

	_, err = s.db.Exec(string(migrationSQL))
	if err != nil {
		return fmt.Errorf("error executing migrations: %v", err)
	}
	return nil
}

func (s *PostgresStore) set(ctx context.Context, sessionID, key, value string) error {
	query := `
		INSERT INTO session_kv (session_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (session_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	_, err := s.db.ExecContext(ctx, query, sessionID, key, value)
	if err != nil {
		return fmt.Errorf("error writing session value: %v", err)
	}
	return nil
}

func (s *PostgresStore) get(ctx context.Context, sessionID, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM session_kv WHERE session_id = $1 AND key = $2`,
		sessionID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error reading session value: %v", err)
	}
	return value, true, nil
}

func (s *PostgresStore) SaveText(ctx context.Context, sessionID, text string) error {
	return s.set(ctx, sessionID, keyText, text)
}

func (s *PostgresStore) GetText(ctx context.Context, sessionID string) (string, error) {
	text, _, err := s.get(ctx, sessionID, keyText)
	return text, err
}

func (s *PostgresStore) SaveResult(ctx context.Context, sessionID string, result models.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.set(ctx, sessionID, keyResult, string(data))
}

func (s *PostgresStore) GetResult(ctx context.Context, sessionID string) (*models.AnalysisResult, error) {
	data, exists, err := s.get(ctx, sessionID, keyResult)
	if err != nil || !exists {
		return nil, err
	}
	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *PostgresStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM session_kv WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("error deleting session: %v", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
