package dto

// ── report entity DTOs ──

// BulkSubmitRequest rows for one entity; each row is a subset of the entity's
// fields plus an optional id
type BulkSubmitRequest struct {
	Rows []map[string]any `json:"rows" binding:"required"`
}

// BulkSubmitResponse outcome of a bulk submission
type BulkSubmitResponse struct {
	Entity  string `json:"entity"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
	Rows    []any  `json:"rows"`
}

// ReportListQuery query string of GET /reports/:entity
type ReportListQuery struct {
	TyphoonID    *uint `form:"typhoon_id"`
	Year         int   `form:"year"          binding:"omitempty,gte=1900,lte=9999"`
	IncludeStale bool  `form:"include_stale"`
}

// ReportListResponse rows of one entity and the scope they were read in
type ReportListResponse struct {
	Entity    string  `json:"entity"`
	TyphoonID *uint   `json:"typhoon_id"`
	Since     *string `json:"since"`
	Rows      []any   `json:"rows"`
}

// EntityInfo catalog entry for one report entity
type EntityInfo struct {
	Key           string       `json:"key"`
	Label         string       `json:"label"`
	ModelType     string       `json:"model_type"`
	TyphoonScoped bool         `json:"typhoon_scoped"`
	Tracked       bool         `json:"tracked"`
	ReplaceMode   bool         `json:"replace_mode"`
	Columns       []ColumnInfo `json:"columns"`
}

// ColumnInfo one field of an entity
type ColumnInfo struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}
