package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/uhppoted/uhppoted-app-gsheets/gsheets"
	"github.com/uhppoted/uhppoted-app-gsheets/stream"
)

var GetCmd = Get{
	command: command{
		url:   "",
		debug: false,
	},

	file:    time.Now().Format("2006-01-02T150405.csv"),
	options: gsheets.DefaultOptions(),
}

type Get struct {
	command
	file    string
	options gsheets.Options
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves a Google Sheets cell range and stores it to a local CSV file"
}

func (cmd *Get) Usage() string {
	return "--url <url> [--file <file>]"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--tokens <file>] get [options] --url <URL> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads a Google Sheets cell range to a CSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s --debug get --url \"gsheet://1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/ACL!A1:E\" \\\n", APP)
	fmt.Println(`                             --include-hidden-rows=false \`)
	fmt.Println(`                             --file "example.csv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.file, "file", cmd.file, "CSV file name ('-' for stdout). Defaults to '<yyyy-mm-ddTHHmmss>.csv'")
	flagset.BoolVar(&cmd.options.IncludeHiddenColumns, "include-hidden-columns", cmd.options.IncludeHiddenColumns, "Includes columns hidden by the user")
	flagset.BoolVar(&cmd.options.IncludeHiddenRows, "include-hidden-rows", cmd.options.IncludeHiddenRows, "Includes rows hidden by the user")
	flagset.BoolVar(&cmd.options.Header, "header", cmd.options.Header, "Reserved")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	options := args[0].(*Options)

	cmd.debug = options.Debug
	cmd.options.Debug = options.Debug

	// ... check parameters
	if err := cmd.validate(); err != nil {
		return err
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	if cmd.debug {
		debugf("get %v  tokens:%v", cmd.url, options.Tokens)
	}

	return cmd.get(context.Background(), dispatcher(options, cmd.options))
}

func (cmd *Get) get(ctx context.Context, d *stream.Dispatcher) error {
	if cmd.file == "-" {
		return d.Read(ctx, cmd.url, os.Stdout)
	}

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".gsheets-*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := d.Read(ctx, cmd.url, tmp); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), cmd.file); err != nil {
		return err
	}

	infof("Retrieved %v to file %s", cmd.url, cmd.file)

	return nil
}
