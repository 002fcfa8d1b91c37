package view

// Column describes one table column for records of type T. Render, when
// set, overrides the default field lookup.
type Column[T any] struct {
	Key    string
	Header string
	Render func(T) string
}

// fielder is the lookup contract records implement for raw column access.
type fielder interface {
	Field(key string) string
}

// Table is the render-ready form of a record page: all type information
// resolved to strings so a single template serves every resource.
type Table struct {
	Headers []string
	Rows    []Row
	Paging  Paging
	Loading bool
	// Actions adds the trailing Edit/Delete column; the links carry the
	// row ID back through the page URL.
	Actions bool
}

type Row struct {
	ID    string
	Cells []string
}

// Empty reports whether the empty-state placeholder should show. A
// loading table is never empty; the loading placeholder wins.
func (t Table) Empty() bool {
	return !t.Loading && len(t.Rows) == 0
}

// BuildTable renders every column of every record. A column's Render
// function takes precedence; otherwise the record's own field lookup is
// used, and records without one yield empty cells.
func BuildTable[T any](records []T, columns []Column[T], paging Paging, loading bool) Table {
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
	}

	rows := make([]Row, 0, len(records))
	for _, record := range records {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = cellValue(record, col)
		}

		var id string
		if f, ok := any(record).(fielder); ok {
			id = f.Field("id")
		}
		rows = append(rows, Row{ID: id, Cells: cells})
	}

	return Table{Headers: headers, Rows: rows, Paging: paging, Loading: loading}
}

func cellValue[T any](record T, col Column[T]) string {
	if col.Render != nil {
		return col.Render(record)
	}

	if f, ok := any(record).(fielder); ok {
		return f.Field(col.Key)
	}

	return ""
}
