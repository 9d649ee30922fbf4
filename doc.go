// Copyright 2023 uhppoted@twyst.co.za. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package uhppoted-app-gsheets exposes a Google Sheets cell range as a CSV byte stream.

A range is addressed by a URL of the form gsheet://<spreadsheet ID>/<range> (or gsheets://) and
can be read as CSV, optionally without the rows and columns hidden by the user, or overwritten
from CSV. The values written are interpreted by Google Sheets as though they had been typed in.

uhppoted-app-gsheets supports the following commands:

  - get, to download a Google Sheets cell range as a CSV file
  - put, to store a CSV file to a Google Sheets cell range
  - version, to display the current version

Access tokens are read from the file named by the --tokens option or the GSHEETS_TOKEN_FILE
environment variable (default ~/.uhppoted_google_sheets.json) and refreshed as required.
*/
package sheets
