package dto

// ── modification ledger DTOs ──

// FieldHistoryEntry one change of one field
type FieldHistoryEntry struct {
	Old       any         `json:"old"`
	New       any         `json:"new"`
	User      UserSummary `json:"user"`
	Timestamp string      `json:"timestamp"`
}

// HistoryResponse "<model_id>_<field>" → changes, newest first
type HistoryResponse struct {
	ModelType string                         `json:"model_type"`
	History   map[string][]FieldHistoryEntry `json:"history"`
}

// UserSummary who made a change
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
