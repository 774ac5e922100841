package truthtable

import (
	"fmt"
	"strconv"
)

// FormatValue renders a cell for display. Booleans and 0/1 numbers become
// T and F.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if x {
			return "T"
		}
		return "F"
	case float64:
		switch x {
		case 1:
			return "T"
		case 0:
			return "F"
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
