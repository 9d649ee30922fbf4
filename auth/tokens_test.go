package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func write(t *testing.T, r record) string {
	path := filepath.Join(t.TempDir(), "tokens.json")

	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if err := os.WriteFile(path, b, 0600); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	return path
}

func read(t *testing.T, path string) record {
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	r := record{}
	if err := json.Unmarshal(b, &r); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	return r
}

func endpoint(t *testing.T, requests *int) string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++

		if err := r.ParseForm(); err != nil {
			t.Errorf("Invalid token request (%v)", err)
		}

		if v := r.Form.Get("grant_type"); v != "refresh_token" {
			t.Errorf("Incorrect grant_type - expected:%v, got:%v", "refresh_token", v)
		}

		if v := r.Form.Get("refresh_token"); v != "stapler-in-jello" {
			t.Errorf("Incorrect refresh_token - expected:%v, got:%v", "stapler-in-jello", v)
		}

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{ "access_token": "refreshed", "token_type": "Bearer", "expires_in": 3600 }`)
	}))

	t.Cleanup(srv.Close)

	return srv.URL
}

func TestTokenSourceWithValidToken(t *testing.T) {
	path := write(t, record{
		Token:        "identity-theft",
		RefreshToken: "stapler-in-jello",
		ClientID:     "dunder-mifflin",
		ClientSecret: "bears-beets-battlestar-galactica",
		Expiry:       time.Now().Add(time.Hour).UTC().Format(time.RFC3339Nano),
	})

	tokens, err := TokenFile{Path: path}.TokenSource(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	token, err := tokens.Token()
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if token.AccessToken != "identity-theft" {
		t.Errorf("Incorrect access token - expected:%v, got:%v", "identity-theft", token.AccessToken)
	}
}

func TestTokenSourceWithoutExpiry(t *testing.T) {
	path := write(t, record{Token: "identity-theft"})

	tokens, err := TokenFile{Path: path}.TokenSource(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if token, err := tokens.Token(); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	} else if token.AccessToken != "identity-theft" {
		t.Errorf("Incorrect access token - expected:%v, got:%v", "identity-theft", token.AccessToken)
	}
}

func TestTokenSourceRefreshesExpiredToken(t *testing.T) {
	requests := 0
	path := write(t, record{
		Token:        "identity-theft",
		RefreshToken: "stapler-in-jello",
		TokenURI:     endpoint(t, &requests),
		ClientID:     "dunder-mifflin",
		ClientSecret: "bears-beets-battlestar-galactica",
		Scopes:       []string{SHEETS},
		Expiry:       "2020-01-01T00:00:00.000000Z",
	})

	tokens, err := TokenFile{Path: path}.TokenSource(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	token, err := tokens.Token()
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if token.AccessToken != "refreshed" {
		t.Errorf("Incorrect access token - expected:%v, got:%v", "refreshed", token.AccessToken)
	}

	if requests != 1 {
		t.Errorf("Expected 1 token refresh request, got %v", requests)
	}

	saved := read(t, path)
	if saved.Token != "refreshed" {
		t.Errorf("Refreshed token not saved - expected:%v, got:%v", "refreshed", saved.Token)
	}

	if saved.RefreshToken != "stapler-in-jello" {
		t.Errorf("Refresh token not retained - expected:%v, got:%v", "stapler-in-jello", saved.RefreshToken)
	}

	if saved.ClientID != "dunder-mifflin" {
		t.Errorf("Client ID not retained - expected:%v, got:%v", "dunder-mifflin", saved.ClientID)
	}

	if expiry, err := parseExpiry(saved.Expiry); err != nil || !expiry.After(time.Now()) {
		t.Errorf("Invalid saved expiry %v (%v)", saved.Expiry, err)
	}

	if info, err := os.Stat(path); err != nil {
		t.Errorf("Unexpected error (%v)", err)
	} else if info.Mode().Perm()&0077 != 0 {
		t.Errorf("Token file is accessible by other users (%v)", info.Mode().Perm())
	}
}

func TestTokenSourceWithExpiredTokenAndNoRefreshToken(t *testing.T) {
	path := write(t, record{
		Token:  "identity-theft",
		Expiry: "2020-01-01T00:00:00Z",
	})

	if _, err := (TokenFile{Path: path}).TokenSource(context.Background()); !errors.Is(err, ErrCannotRefresh) {
		t.Errorf("Expected %v, got %v", ErrCannotRefresh, err)
	}
}

func TestTokenSourceWithMissingTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	if _, err := (TokenFile{Path: path}).TokenSource(context.Background()); !errors.Is(err, ErrInvalidTokenFile) {
		t.Errorf("Expected %v, got %v", ErrInvalidTokenFile, err)
	}
}

func TestTokenSourceWithInvalidTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	if err := os.WriteFile(path, []byte("Bears. Beets. Battlestar Galactica."), 0600); err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if _, err := (TokenFile{Path: path}).TokenSource(context.Background()); !errors.Is(err, ErrInvalidTokenFile) {
		t.Errorf("Expected %v, got %v", ErrInvalidTokenFile, err)
	}
}

func TestTokenSourceWithInvalidExpiry(t *testing.T) {
	path := write(t, record{Token: "identity-theft", Expiry: "last tuesday"})

	if _, err := (TokenFile{Path: path}).TokenSource(context.Background()); !errors.Is(err, ErrInvalidTokenFile) {
		t.Errorf("Expected %v, got %v", ErrInvalidTokenFile, err)
	}
}

func TestParseExpiry(t *testing.T) {
	expected := time.Date(2024, time.May, 7, 10, 11, 12, 345678000, time.UTC)

	for _, s := range []string{"2024-05-07T10:11:12.345678Z", "2024-05-07T10:11:12.345678"} {
		if expiry, err := parseExpiry(s); err != nil {
			t.Errorf("Unexpected error parsing %v (%v)", s, err)
		} else if !expiry.Equal(expected) {
			t.Errorf("Incorrect expiry for %v - expected:%v, got:%v", s, expected, expiry)
		}
	}
}
