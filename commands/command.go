package commands

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/uhppoted/uhppoted-app-gsheets/auth"
	"github.com/uhppoted/uhppoted-app-gsheets/gsheets"
	"github.com/uhppoted/uhppoted-app-gsheets/stream"
)

const APP = "uhppoted-app-gsheets"

// Options holds the global command line options, resolved once at startup.
type Options struct {
	Debug  bool
	Tokens string
}

type command struct {
	url   string
	debug bool
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.url, "url", c.url, "Spreadsheet range URL e.g. 'gsheet://1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/ACL!A2:E'")

	return flagset
}

func (c *command) validate() error {
	if strings.TrimSpace(c.url) == "" {
		return fmt.Errorf("--url is a required option")
	}

	if _, err := gsheets.ParseLocator(c.url); err != nil {
		return err
	}

	return nil
}

// dispatcher registers the Google Sheets handlers against the token file configured
// for this invocation.
func dispatcher(options *Options, opts gsheets.Options) *stream.Dispatcher {
	credentials := auth.TokenFile{
		Path: options.Tokens,
	}

	return stream.NewDispatcher(gsheets.Handlers(credentials, opts))
}

func helpOptions(flagset *flag.FlagSet) {
	count := 0
	flag.VisitAll(func(f *flag.Flag) {
		count++
	})

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-21s %s\n", f.Name, f.Usage)
	})

	if count > 0 {
		fmt.Println()
		fmt.Println("  Options:")
		flag.VisitAll(func(f *flag.Flag) {
			fmt.Printf("    --%-21s %s\n", f.Name, f.Usage)
		})
	}
}

func debugf(format string, args ...any) {
	log.Printf("%-5s %s", "DEBUG", fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	log.Printf("%-5s %s", "INFO", fmt.Sprintf(format, args...))
}
