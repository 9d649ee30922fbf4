package gsheets

// Visibility holds the 'hidden by user' flags for the columns and rows of a range. A nil
// *Visibility means the service returned no grid metadata and nothing is hidden.
type Visibility struct {
	Columns []bool
	Rows    []bool
}

// dropHidden removes the hidden columns and then the hidden rows from the grid. Cells and
// rows are paired positionally with their flags and anything beyond the shorter of the
// two is discarded.
func dropHidden(values [][]string, hidden *Visibility, options Options) [][]string {
	if hidden == nil {
		return values
	}

	if !options.IncludeHiddenColumns {
		values = dropColumns(values, hidden.Columns)
	}

	if !options.IncludeHiddenRows {
		values = dropRows(values, hidden.Rows)
	}

	return values
}

func dropColumns(values [][]string, hidden []bool) [][]string {
	rows := make([][]string, 0, len(values))

	for _, row := range values {
		record := []string{}
		for i, v := range row {
			if i < len(hidden) && !hidden[i] {
				record = append(record, v)
			}
		}

		rows = append(rows, record)
	}

	return rows
}

func dropRows(values [][]string, hidden []bool) [][]string {
	rows := make([][]string, 0, len(values))

	for i, row := range values {
		if i < len(hidden) && !hidden[i] {
			rows = append(rows, row)
		}
	}

	return rows
}
