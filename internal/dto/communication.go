package dto

// ── communication service DTOs ──

// CreateCommunicationServiceRequest add a service to the reference list
type CreateCommunicationServiceRequest struct {
	Name string `json:"name" binding:"required,min=2,max=150"`
}

// UpdateCommunicationServiceRequest rename or toggle a service
type UpdateCommunicationServiceRequest struct {
	Name     *string `json:"name"      binding:"omitempty,min=2,max=150"`
	IsActive *bool   `json:"is_active"`
}

// CommunicationServiceResponse reference list entry
type CommunicationServiceResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
