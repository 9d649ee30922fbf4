package gsheets

import (
	"errors"
)

var ErrInvalidLocator = errors.New("invalid spreadsheet locator")
var ErrNotConnected = errors.New("not connected to Google Sheets")
var ErrNoGridData = errors.New("no grid data for range")
