package gsheets

import (
	"context"
)

// Service is the subset of the Google Sheets API used by the adapter.
type Service interface {
	// Values returns the cell values in the range. An empty range returns an empty grid.
	Values(ctx context.Context, spreadsheet, area string) ([][]string, error)

	// Visibility returns the 'hidden by user' flags for the rows and columns in the range,
	// or ErrNoGridData if the response has no grid data for the range.
	Visibility(ctx context.Context, spreadsheet, area string) (*Visibility, error)

	// Update overwrites the range with the values, interpreted as user entered.
	Update(ctx context.Context, spreadsheet, area string, values [][]string) error
}
