package gsheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const USER_ENTERED = "USER_ENTERED"

const metadataFields = "sheets(data(rowMetadata(hiddenByUser),columnMetadata(hiddenByUser)))"

type google struct {
	sheets *sheets.Service
}

// NewGoogleService wraps a Google Sheets API client created with the supplied client
// options (token source, HTTP client, endpoint).
func NewGoogleService(ctx context.Context, opts ...option.ClientOption) (Service, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	return &google{
		sheets: service,
	}, nil
}

func (g *google) Values(ctx context.Context, spreadsheet, area string) ([][]string, error) {
	response, err := g.sheets.Spreadsheets.Values.Get(spreadsheet, area).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet (%w)", err)
	}

	values := make([][]string, 0, len(response.Values))
	for _, row := range response.Values {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = stringify(v)
		}

		values = append(values, record)
	}

	return values, nil
}

func (g *google) Visibility(ctx context.Context, spreadsheet, area string) (*Visibility, error) {
	response, err := g.sheets.Spreadsheets.Get(spreadsheet).
		Ranges(area).
		IncludeGridData(true).
		Fields(metadataFields).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve metadata for sheet (%w)", err)
	}

	if len(response.Sheets) == 0 || response.Sheets[0] == nil || len(response.Sheets[0].Data) == 0 || response.Sheets[0].Data[0] == nil {
		return nil, ErrNoGridData
	}

	data := response.Sheets[0].Data[0]
	visibility := Visibility{
		Columns: make([]bool, len(data.ColumnMetadata)),
		Rows:    make([]bool, len(data.RowMetadata)),
	}

	for i, column := range data.ColumnMetadata {
		visibility.Columns[i] = column != nil && column.HiddenByUser
	}

	for i, row := range data.RowMetadata {
		visibility.Rows[i] = row != nil && row.HiddenByUser
	}

	return &visibility, nil
}

func (g *google) Update(ctx context.Context, spreadsheet, area string, values [][]string) error {
	rows := make([][]any, len(values))
	for i, record := range values {
		row := make([]any, len(record))
		for j, v := range record {
			row[j] = v
		}

		rows[i] = row
	}

	rq := sheets.ValueRange{
		Range:  area,
		Values: rows,
	}

	if _, err := g.sheets.Spreadsheets.Values.Update(spreadsheet, area, &rq).ValueInputOption(USER_ENTERED).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to update sheet (%w)", err)
	}

	return nil
}

func stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}
