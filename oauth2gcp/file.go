package oauth2gcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// FileStore keeps the token as JSON in a single file readable only by the
// owner.
type FileStore struct {
	Path string
}

func (fs FileStore) Load(_ context.Context) (*oauth2.Token, error) {
	f, err := os.Open(fs.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoToken
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	var token oauth2.Token
	err = json.NewDecoder(f).Decode(&token)
	if err != nil {
		return nil, fmt.Errorf("oauth2gcp: unable to read token: %s: %w", fs.Path, err)
	}

	return &token, nil
}

func (fs FileStore) Save(_ context.Context, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(fs.Path), 0700); err != nil {
		return fmt.Errorf("oauth2gcp: unable to save token: %s: %w", fs.Path, err)
	}
	f, err := os.OpenFile(fs.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("oauth2gcp: unable to save token: %s: %w", fs.Path, err)
	}

	if err := json.NewEncoder(f).Encode(token); err != nil {
		f.Close()
		return fmt.Errorf("oauth2gcp: unable to save token: %s: %w", fs.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("oauth2gcp: unable to save token: %s: %w", fs.Path, err)
	}
	return nil
}
