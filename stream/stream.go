// Package stream dispatches URL addressed resources to the handler registered for the
// URL scheme. Handlers are registered explicitly by the host application when the
// dispatcher is created.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrUnknownScheme = errors.New("no handler for URL scheme")

// Handler is a resource that can be read from and written to as a byte stream.
type Handler interface {
	Connect(ctx context.Context) error
	Close() error
	Get(ctx context.Context, w io.Writer) error
	Put(ctx context.Context, r io.Reader) error
}

type Constructor func(url string) (Handler, error)

type Dispatcher struct {
	handlers map[string]Constructor
}

func NewDispatcher(handlers map[string]Constructor) *Dispatcher {
	d := Dispatcher{
		handlers: map[string]Constructor{},
	}

	for scheme, h := range handlers {
		d.handlers[strings.ToLower(scheme)] = h
	}

	return &d
}

// Open returns an unconnected handler for the URL.
func (d *Dispatcher) Open(u string) (Handler, error) {
	scheme, _, ok := strings.Cut(strings.TrimSpace(u), "://")
	if !ok {
		return nil, fmt.Errorf("%w: '%v'", ErrUnknownScheme, u)
	}

	if h, ok := d.handlers[strings.ToLower(scheme)]; ok {
		return h(u)
	}

	return nil, fmt.Errorf("%w: '%v'", ErrUnknownScheme, scheme)
}

// Read connects to the resource and copies its contents to w.
func (d *Dispatcher) Read(ctx context.Context, u string, w io.Writer) error {
	return d.with(ctx, u, func(h Handler) error {
		return h.Get(ctx, w)
	})
}

// Write connects to the resource and replaces its contents with the bytes read from r.
func (d *Dispatcher) Write(ctx context.Context, u string, r io.Reader) error {
	return d.with(ctx, u, func(h Handler) error {
		return h.Put(ctx, r)
	})
}

func (d *Dispatcher) with(ctx context.Context, u string, f func(Handler) error) error {
	h, err := d.Open(u)
	if err != nil {
		return err
	}

	if err := h.Connect(ctx); err != nil {
		return err
	}

	defer h.Close()

	return f(h)
}
