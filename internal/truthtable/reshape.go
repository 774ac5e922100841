package truthtable

import "fmt"

// Reshape converts a column-oriented Response into a DisplayModel.
//
// Headers follow the backend's column order with OutputKey moved last.
// Every column must have the same length as the output column; a response
// that breaks this is reported as ErrColumnLength instead of being truncated.
func Reshape(resp *Response) (*DisplayModel, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrMalformed)
	}

	output, ok := resp.Column(OutputKey)
	if !ok {
		return nil, ErrMissingOutput
	}
	n := len(output.Values)

	headers := make([]string, 0, len(resp.Columns))
	columns := make(map[string][]any, len(resp.Columns))
	for _, c := range resp.Columns {
		if len(c.Values) != n {
			return nil, fmt.Errorf("%w: column %q has %d values, %q has %d",
				ErrColumnLength, c.Name, len(c.Values), OutputKey, n)
		}
		columns[c.Name] = c.Values
		if c.Name != OutputKey {
			headers = append(headers, c.Name)
		}
	}
	headers = append(headers, OutputKey)

	rows := make([]Row, n)
	for i := range rows {
		row := make(Row, len(headers))
		for _, h := range headers {
			row[h] = columns[h][i]
		}
		rows[i] = row
	}

	return &DisplayModel{Headers: headers, Rows: rows}, nil
}
