package oauth2gcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps one token per account name in a tokens table.
type SQLiteStore struct {
	db      *sql.DB
	account string
}

func OpenSQLiteStore(ctx context.Context, path, account string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("oauth2gcp: open %s: %w", path, err)
	}
	_, err = db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS tokens (
		account_name TEXT PRIMARY KEY,
		token TEXT NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("oauth2gcp: create tokens table: %w", err)
	}
	return &SQLiteStore{db: db, account: account}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*oauth2.Token, error) {
	var tokenJSON []byte
	err := s.db.QueryRowContext(ctx, "SELECT token FROM tokens WHERE account_name = ?", s.account).Scan(&tokenJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoToken
	} else if err != nil {
		return nil, fmt.Errorf("oauth2gcp: error retrieving token for %s: %w", s.account, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("oauth2gcp: error unmarshaling token for %s: %w", s.account, err)
	}
	return &token, nil
}

func (s *SQLiteStore) Save(ctx context.Context, token *oauth2.Token) error {
	tokenJSON, err := json.Marshal(token)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, "INSERT OR REPLACE INTO tokens (account_name, token) VALUES (?, ?)",
		s.account, string(tokenJSON))
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
