package web

import "dmath-truthtable/internal/truthtable"

// TruthTableResponse is the JSON body of GET /api/truthtable.
type TruthTableResponse struct {
	Formula string           `json:"formula"`
	Headers []string         `json:"headers"`
	Rows    []truthtable.Row `json:"rows"`
}

// pageData feeds templates/page.html.
type pageData struct {
	Formula   string
	Submitted bool
	Headers   []string
	Rows      [][]string
	Error     string
}
