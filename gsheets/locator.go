package gsheets

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Schemes lists the URL schemes handled by the Google Sheets adapter. Both aliases
// have identical behaviour.
var Schemes = []string{"gsheet", "gsheets"}

// Locator identifies a cell range in a Google Sheets spreadsheet, e.g.
// gsheet://1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/Class Data!A2:E
type Locator struct {
	Spreadsheet string
	Range       string
}

var locatorRegex = regexp.MustCompile(`^\s*([a-zA-Z][a-zA-Z0-9+.-]*)://([^/]*)(?:/(.*))?$`)

// ParseLocator extracts the spreadsheet ID and cell range from a gsheet:// URL.
func ParseLocator(u string) (Locator, error) {
	match := locatorRegex.FindStringSubmatch(u)
	if len(match) < 4 {
		return Locator{}, fmt.Errorf("%w: '%s' - expected something like 'gsheet://<spreadsheet>/<range>'", ErrInvalidLocator, u)
	}

	if !isScheme(match[1]) {
		return Locator{}, fmt.Errorf("%w: unsupported scheme '%s'", ErrInvalidLocator, match[1])
	}

	spreadsheet := strings.TrimSpace(match[2])
	if spreadsheet == "" {
		return Locator{}, fmt.Errorf("%w: '%s' - missing spreadsheet ID", ErrInvalidLocator, u)
	}

	// ... sheet names may contain a literal '%' so only unescape well formed ranges
	area := strings.TrimSpace(match[3])
	if v, err := url.PathUnescape(area); err == nil {
		area = v
	}

	if area == "" {
		return Locator{}, fmt.Errorf("%w: '%s' - missing cell range", ErrInvalidLocator, u)
	}

	return Locator{
		Spreadsheet: spreadsheet,
		Range:       area,
	}, nil
}

func (l Locator) String() string {
	return fmt.Sprintf("%s://%s/%s", Schemes[0], l.Spreadsheet, l.Range)
}

func isScheme(scheme string) bool {
	for _, s := range Schemes {
		if strings.EqualFold(s, scheme) {
			return true
		}
	}

	return false
}
