package dto

// LineRange is an inclusive 1-based line range.
type LineRange struct {
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Fragment string `json:"fragment"`
}

// LineRangeResponse is the result of parsing a fragment. Data is null when
// the fragment selects no lines.
type LineRangeResponse struct {
	Data *LineRange `json:"data"`
}

// ExpandRequest is the body of POST /lines/expand.
type ExpandRequest struct {
	Line     int    `json:"line"`
	Fragment string `json:"fragment"`
}

// ExpandResponse holds the fragment after a shift-click.
type ExpandResponse struct {
	Fragment string `json:"fragment"`
}
