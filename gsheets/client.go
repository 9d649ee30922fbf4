package gsheets

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/api/option"

	"github.com/uhppoted/uhppoted-app-gsheets/auth"
)

// Options controls how a range is rendered when it is read. The zero value excludes
// hidden rows and columns, use DefaultOptions for the documented defaults.
type Options struct {
	// Header is accepted for compatibility but currently has no effect.
	Header               bool
	IncludeHiddenColumns bool
	IncludeHiddenRows    bool
	Debug                bool
}

func DefaultOptions() Options {
	return Options{
		Header:               true,
		IncludeHiddenColumns: true,
		IncludeHiddenRows:    true,
	}
}

// Client exposes a Google Sheets cell range as a CSV byte stream. A Client is not safe
// for concurrent use but separate clients share no state.
type Client struct {
	locator     Locator
	options     Options
	credentials auth.Provider
	dial        func(context.Context, auth.Provider) (Service, error)
	service     Service
}

// NewClient validates the URL and returns an unconnected client for the range.
func NewClient(url string, credentials auth.Provider, options Options) (*Client, error) {
	locator, err := ParseLocator(url)
	if err != nil {
		return nil, err
	}

	return &Client{
		locator:     locator,
		options:     options,
		credentials: credentials,
		dial:        dial,
	}, nil
}

func (c *Client) Locator() Locator {
	return c.locator
}

func (c *Client) Options() Options {
	return c.options
}

// Connect creates the session with the Google Sheets API. A closed client may be
// reconnected.
func (c *Client) Connect(ctx context.Context) error {
	if c.credentials == nil {
		return fmt.Errorf("%w: no credentials provider", auth.ErrInvalidTokenFile)
	}

	service, err := c.dial(ctx, c.credentials)
	if err != nil {
		return err
	}

	c.service = service

	if c.options.Debug {
		debugf("connected to spreadsheet - ID:%s  range:%s", c.locator.Spreadsheet, c.locator.Range)
	}

	return nil
}

// Close releases the session. Closing an unconnected client is a no-op.
func (c *Client) Close() error {
	c.service = nil

	return nil
}

// Get writes the cell range to w as CSV, optionally without the hidden rows and columns.
func (c *Client) Get(ctx context.Context, w io.Writer) error {
	if c.service == nil {
		return ErrNotConnected
	}

	values, err := c.service.Values(ctx, c.locator.Spreadsheet, c.locator.Range)
	if err != nil {
		return err
	}

	if !c.options.IncludeHiddenColumns || !c.options.IncludeHiddenRows {
		hidden, err := c.hidden(ctx)
		if err != nil {
			return err
		}

		values = dropHidden(values, hidden, c.options)
	}

	b, err := encode(values)
	if err != nil {
		return fmt.Errorf("error creating CSV (%w)", err)
	}

	if _, err := w.Write(b); err != nil {
		return err
	}

	if c.options.Debug {
		debugf("retrieved %v rows from %v", len(values), c.locator)
	}

	return nil
}

// Put replaces the contents of the cell range with the CSV read from r. The values are
// interpreted by Google Sheets as though they were typed in by a user.
func (c *Client) Put(ctx context.Context, r io.Reader) error {
	if c.service == nil {
		return ErrNotConnected
	}

	values, err := decode(r)
	if err != nil {
		return fmt.Errorf("invalid CSV (%w)", err)
	}

	if err := c.service.Update(ctx, c.locator.Spreadsheet, c.locator.Range, values); err != nil {
		return err
	}

	if c.options.Debug {
		debugf("uploaded %v rows to %v", len(values), c.locator)
	}

	return nil
}

func (c *Client) hidden(ctx context.Context) (*Visibility, error) {
	hidden, err := c.service.Visibility(ctx, c.locator.Spreadsheet, c.locator.Range)
	if errors.Is(err, ErrNoGridData) {
		warnf("sheet %v has no metadata - %v", c.locator.Spreadsheet, err)
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return hidden, nil
}

func dial(ctx context.Context, credentials auth.Provider) (Service, error) {
	tokens, err := credentials.TokenSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	return NewGoogleService(ctx, option.WithTokenSource(tokens))
}
