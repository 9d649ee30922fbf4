package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// TokenFile is a Provider backed by a JSON file holding an authorised user token and the
// OAuth2 client used to refresh it. Refreshed tokens are written back to the file.
type TokenFile struct {
	Path string
}

type record struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	TokenURI     string   `json:"token_uri,omitempty"`
	ClientID     string   `json:"client_id,omitempty"`
	ClientSecret string   `json:"client_secret,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`
	Expiry       string   `json:"expiry,omitempty"`
}

var expiryFormats = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func (t TokenFile) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	r, err := load(t.Path)
	if err != nil {
		return nil, err
	}

	token, err := r.token()
	if err != nil {
		return nil, err
	}

	if !token.Valid() {
		if token.RefreshToken == "" {
			return nil, fmt.Errorf("%w in %v (token expired and no refresh token)", ErrCannotRefresh, t.Path)
		}

		if r, token, err = t.refresh(ctx); err != nil {
			return nil, err
		}
	}

	src := persistent{
		path:   t.Path,
		record: r,
		last:   token,
		tokens: oauth2.ReuseTokenSource(token, r.config().TokenSource(ctx, token)),
	}

	return &src, nil
}

// refresh reloads the token file under lock, since another process may already have
// refreshed it, and exchanges the refresh token for a new access token if it is still
// expired.
func (t TokenFile) refresh(ctx context.Context) (*record, *oauth2.Token, error) {
	unlock, err := lock(t.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w in %v (%v)", ErrCannotRefresh, t.Path, err)
	}

	defer unlock()

	r, err := load(t.Path)
	if err != nil {
		return nil, nil, err
	}

	token, err := r.token()
	if err != nil {
		return nil, nil, err
	} else if token.Valid() {
		return r, token, nil
	}

	refreshed, err := r.config().TokenSource(ctx, token).Token()
	if err != nil {
		return nil, nil, fmt.Errorf("%w in %v (%v)", ErrCannotRefresh, t.Path, err)
	}

	r.update(refreshed)

	if err := save(t.Path, r); err != nil {
		return nil, nil, err
	}

	return r, refreshed, nil
}

// persistent saves the token whenever the wrapped source refreshes it.
type persistent struct {
	sync.Mutex
	path   string
	record *record
	last   *oauth2.Token
	tokens oauth2.TokenSource
}

func (p *persistent) Token() (*oauth2.Token, error) {
	p.Lock()
	defer p.Unlock()

	token, err := p.tokens.Token()
	if err != nil {
		return nil, err
	}

	if token.AccessToken != p.last.AccessToken {
		p.record.update(token)
		p.last = token

		unlock, err := lock(p.path)
		if err != nil {
			warnf("could not lock token file %v (%v)", p.path, err)
		} else {
			defer unlock()

			if err := save(p.path, p.record); err != nil {
				warnf("could not save refreshed token to %v (%v)", p.path, err)
			}
		}
	}

	return token, nil
}

func load(path string) (*record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %v (%v)", ErrInvalidTokenFile, path, err)
	}

	r := record{}
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("%w %v (%v)", ErrInvalidTokenFile, path, err)
	}

	return &r, nil
}

func save(path string, r *record) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tokens-*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(b); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmp.Name(), 0600); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func (r *record) token() (*oauth2.Token, error) {
	token := oauth2.Token{
		AccessToken:  r.Token,
		RefreshToken: r.RefreshToken,
		TokenType:    "Bearer",
	}

	if r.Expiry != "" {
		expiry, err := parseExpiry(r.Expiry)
		if err != nil {
			return nil, fmt.Errorf("%w (invalid expiry '%v')", ErrInvalidTokenFile, r.Expiry)
		}

		token.Expiry = expiry
	}

	return &token, nil
}

func (r *record) config() *oauth2.Config {
	endpoint := google.Endpoint
	if r.TokenURI != "" {
		endpoint.TokenURL = r.TokenURI
	}

	scopes := r.Scopes
	if len(scopes) == 0 {
		scopes = []string{SHEETS}
	}

	return &oauth2.Config{
		ClientID:     r.ClientID,
		ClientSecret: r.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       scopes,
	}
}

func (r *record) update(token *oauth2.Token) {
	r.Token = token.AccessToken
	if token.RefreshToken != "" {
		r.RefreshToken = token.RefreshToken
	}

	if token.Expiry.IsZero() {
		r.Expiry = ""
	} else {
		r.Expiry = token.Expiry.UTC().Format(time.RFC3339Nano)
	}
}

func parseExpiry(s string) (time.Time, error) {
	var err error
	for _, layout := range expiryFormats {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, err
}
