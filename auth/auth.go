// Package auth provides the OAuth2 credentials used to access the Google Sheets API.
package auth

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// SHEETS is the OAuth2 scope required to read and write spreadsheets.
const SHEETS = "https://www.googleapis.com/auth/spreadsheets"

var ErrInvalidTokenFile = errors.New("token file is not valid")
var ErrCannotRefresh = errors.New("unable to refresh token")

// Provider supplies a source of valid access tokens, refreshing them when they expire.
type Provider interface {
	TokenSource(ctx context.Context) (oauth2.TokenSource, error)
}
