package oauth2gcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	oauth2cli "github.com/adrianmartinmulesoft/oauth2-auth-cli"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ErrNoToken is returned by a TokenStore that has nothing saved yet.
var ErrNoToken = errors.New("oauth2gcp: no token stored")

type TokenStore interface {
	Load(ctx context.Context) (*oauth2.Token, error)
	Save(ctx context.Context, token *oauth2.Token) error
}

// LoadConfig reads an "installed application" client secret file as
// downloaded from the Google Cloud console.
func LoadConfig(credFile string, scopes ...string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credFile)
	if err != nil {
		return nil, fmt.Errorf("oauth2gcp: missing client credentials: %w", err)
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("oauth2gcp: failed to parse client credentials: %s: %w",
			credFile, err)
	}
	return config, nil
}

// AuthURL is the consent page to visit; it asks for offline access so a
// refresh token is issued.
func AuthURL(config *oauth2.Config, state string) string {
	return config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades a consent-page code for a token and stores it.
func Exchange(ctx context.Context, config *oauth2.Config, store TokenStore, code string) (*oauth2.Token, error) {
	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth2gcp: unable to exchange code: %w", err)
	}
	if err := store.Save(ctx, token); err != nil {
		return nil, fmt.Errorf("oauth2gcp: unable to save token: %w", err)
	}
	return token, nil
}

// GetClient returns an HTTP client authorized with the stored token. Tokens
// refreshed while the client is in use are written back to store. With no
// stored token, interactive runs the browser consent flow; otherwise
// ErrNoToken is returned.
func GetClient(ctx context.Context, config *oauth2.Config, store TokenStore, interactive bool) (*http.Client, error) {
	token, err := store.Load(ctx)
	if errors.Is(err, ErrNoToken) && interactive {
		token, err = oauth2cli.Authorize(config)
		if err != nil {
			return nil, fmt.Errorf("oauth2gcp: unable to authorize: %w", err)
		}
		if err = store.Save(ctx, token); err != nil {
			return nil, fmt.Errorf("oauth2gcp: unable to save token: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	src := &savingSource{
		ctx:   ctx,
		base:  config.TokenSource(ctx, token),
		store: store,
		last:  token.AccessToken,
	}
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(token, src)), nil
}

// savingSource persists every token that differs from the last one seen.
// ReuseTokenSource serializes calls to Token.
type savingSource struct {
	ctx   context.Context
	base  oauth2.TokenSource
	store TokenStore
	last  string
}

func (s *savingSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != s.last {
		log.Debugf("access token refreshed, expires %s", token.Expiry)
		if err := s.store.Save(s.ctx, token); err != nil {
			log.Errorf("unable to save refreshed token: %v", err)
		}
		s.last = token.AccessToken
	}
	return token, nil
}
