package truthtable

// OutputKey is the reserved column holding the formula's computed value.
const OutputKey = "output"

// Column is one named column of a truth table as returned by the backend.
type Column struct {
	Name   string
	Values []any
}

// Response is the column-oriented truth table returned by the backend.
// Columns keep the order in which the backend encoded them.
type Response struct {
	Columns []Column
}

// NewResponse builds a Response from columns in the given order.
func NewResponse(cols ...Column) *Response {
	return &Response{Columns: cols}
}

// Column returns the column named name.
func (r *Response) Column(name string) (Column, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Row maps a header to the value of that column at one row index.
type Row map[string]any

// DisplayModel is the row-oriented form of a Response, ready for rendering.
type DisplayModel struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Cells returns the values of row i in header order.
func (m *DisplayModel) Cells(i int) []any {
	row := m.Rows[i]
	cells := make([]any, len(m.Headers))
	for j, h := range m.Headers {
		cells[j] = row[h]
	}
	return cells
}
