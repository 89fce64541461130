package dto

// ── snapshot DTOs ──

// SnapshotColumn one column of a section
type SnapshotColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// SnapshotSection every row of one entity in scope
type SnapshotSection struct {
	Entity  string           `json:"entity"`
	Label   string           `json:"label"`
	Columns []SnapshotColumn `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// SnapshotResponse the gathered aggregate for a typhoon or a year
type SnapshotResponse struct {
	Scope    string            `json:"scope"` // typhoon | year
	Typhoon  *TyphoonResponse  `json:"typhoon,omitempty"`
	Year     int               `json:"year,omitempty"`
	Sections []SnapshotSection `json:"sections"`
}
