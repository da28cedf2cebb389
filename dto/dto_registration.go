package dto

import (
	"time"

	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/models"
)

// SubmitRegistrationDTO is the body of POST /:kind/submit. A missing TicketID
// creates a draft; a present one updates it in place.
type SubmitRegistrationDTO struct {
	TicketID string                    `json:"ticketId,omitempty"`
	Reason   string                    `json:"reason,omitempty"`
	Status   models.RegistrationStatus `json:"status,omitempty"`
	ClientID string                    `json:"clientId,omitempty"`
	Step     int                       `json:"step"`
	Steps    forms.Steps               `json:"steps"`
	Package  *models.Package           `json:"package,omitempty"`
	Payment  *models.Payment           `json:"payment,omitempty"`
}

// RegistrationDTO is the flat record returned to clients.
type RegistrationDTO struct {
	TicketID      string                    `json:"ticketId"`
	Kind          forms.Kind                `json:"kind"`
	Status        models.RegistrationStatus `json:"status"`
	ClientID      string                    `json:"clientId"`
	Step          int                       `json:"step"`
	Fields        map[string]any            `json:"fields"`
	Package       *models.Package           `json:"package,omitempty"`
	Payment       *models.Payment           `json:"payment,omitempty"`
	FilledByAdmin bool                      `json:"filledByAdmin"`
	LastReason    string                    `json:"lastReason,omitempty"`
	SubmittedAt   *time.Time                `json:"submittedAt,omitempty"`
	CreatedAt     time.Time                 `json:"createdAt"`
	UpdatedAt     time.Time                 `json:"updatedAt"`
}

func NewRegistrationDTO(r *models.Registration) RegistrationDTO {
	fields := map[string]any{}
	for k, v := range r.Fields {
		fields[k] = v
	}
	return RegistrationDTO{
		TicketID:      r.TicketID,
		Kind:          r.Kind,
		Status:        r.Status,
		ClientID:      r.ClientID.Hex(),
		Step:          r.Step,
		Fields:        fields,
		Package:       r.Package,
		Payment:       r.Payment,
		FilledByAdmin: r.FilledByAdmin,
		LastReason:    r.LastReason,
		SubmittedAt:   r.SubmittedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type SignedURLDTO struct {
	SignedURL string    `json:"signedUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type DocumentUploadDTO struct {
	FileURL string `json:"fileUrl"`
}
