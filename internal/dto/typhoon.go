package dto

// ── typhoon DTOs ──

// CreateTyphoonRequest create a typhoon
type CreateTyphoonRequest struct {
	Name        string  `json:"name"        binding:"required,min=2,max=150"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// UpdateTyphoonRequest rename or re-describe a typhoon
type UpdateTyphoonRequest struct {
	Name        string  `json:"name"        binding:"required,min=2,max=150"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// TyphoonResponse typhoon details
type TyphoonResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	StartedAt   string  `json:"started_at"`
	PausedAt    *string `json:"paused_at"`
	ResumedAt   *string `json:"resumed_at"`
	EndedAt     *string `json:"ended_at"`
	CreatedBy   string  `json:"created_by"`
	EndedBy     *string `json:"ended_by"`
	ReportPath  *string `json:"report_path"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// EndTyphoonResponse the ended typhoon plus the outcome of report generation.
// ReportError is set when rendering failed; the typhoon is ended either way.
type EndTyphoonResponse struct {
	Typhoon     TyphoonResponse `json:"typhoon"`
	ReportPath  *string         `json:"report_path"`
	ReportError *string         `json:"report_error,omitempty"`
}

// ActiveTyphoonResponse the open typhoon, if any
type ActiveTyphoonResponse struct {
	Active  bool             `json:"active"`
	Typhoon *TyphoonResponse `json:"typhoon"`
}
