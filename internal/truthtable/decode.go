package truthtable

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Decode parses a backend response body. The body must be a JSON object
// whose values are all arrays; key order is preserved.
func Decode(body []byte) (*Response, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformed)
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON object, got %s", ErrMalformed, root.Type)
	}

	resp := &Response{}
	seen := make(map[string]struct{})

	var err error
	root.ForEach(func(key, value gjson.Result) bool {
		name := key.String()

		if _, dup := seen[name]; dup {
			err = fmt.Errorf("%w: duplicate column %q", ErrMalformed, name)
			return false
		}
		seen[name] = struct{}{}

		if !value.IsArray() {
			err = fmt.Errorf("%w: column %q is not an array", ErrMalformed, name)
			return false
		}

		values := make([]any, 0)
		value.ForEach(func(_, v gjson.Result) bool {
			values = append(values, v.Value())
			return true
		})

		resp.Columns = append(resp.Columns, Column{Name: name, Values: values})
		return true
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}
