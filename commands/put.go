package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/uhppoted/uhppoted-app-gsheets/gsheets"
	"github.com/uhppoted/uhppoted-app-gsheets/stream"
)

var PutCmd = Put{
	command: command{
		url:   "",
		debug: false,
	},

	file: "",
}

type Put struct {
	command
	file string
}

func (cmd *Put) Name() string {
	return "put"
}

func (cmd *Put) Description() string {
	return "Uploads a CSV file to a Google Sheets cell range"
}

func (cmd *Put) Usage() string {
	return "--url <url> --file <file>"
}

func (cmd *Put) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--tokens <file>] put --url <URL> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Uploads a CSV file to a Google Sheets cell range, replacing the existing values")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s --debug put --url \"gsheet://1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/AsIs!A1:E\" \\\n", APP)
	fmt.Println(`                             --file "example.csv"`)
	fmt.Println()
}

func (cmd *Put) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("put")

	flagset.StringVar(&cmd.file, "file", cmd.file, "CSV file ('-' for stdin)")

	return flagset
}

func (cmd *Put) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug

	if err := cmd.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	if cmd.debug {
		debugf("put %v  tokens:%v", cmd.url, options.Tokens)
	}

	opts := gsheets.DefaultOptions()
	opts.Debug = options.Debug

	return cmd.put(context.Background(), dispatcher(options, opts))
}

func (cmd *Put) put(ctx context.Context, d *stream.Dispatcher) error {
	var r io.Reader = os.Stdin

	if cmd.file != "-" {
		f, err := os.Open(cmd.file)
		if err != nil {
			return err
		}

		defer f.Close()

		r = f
	}

	if err := d.Write(ctx, cmd.url, r); err != nil {
		return err
	}

	infof("Uploaded %v to %v", cmd.file, cmd.url)

	return nil
}
