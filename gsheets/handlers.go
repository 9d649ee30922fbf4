package gsheets

import (
	"github.com/uhppoted/uhppoted-app-gsheets/auth"
	"github.com/uhppoted/uhppoted-app-gsheets/stream"
)

// Handlers returns the stream constructors for the gsheet:// and gsheets:// schemes, for
// registration with a stream.Dispatcher by the host application.
func Handlers(credentials auth.Provider, options Options) map[string]stream.Constructor {
	handlers := map[string]stream.Constructor{}

	for _, scheme := range Schemes {
		handlers[scheme] = func(url string) (stream.Handler, error) {
			client, err := NewClient(url, credentials, options)
			if err != nil {
				return nil, err
			}

			return client, nil
		}
	}

	return handlers
}
