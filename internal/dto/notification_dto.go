package dto

import (
	"encoding/json"

	"github.com/cokeastorga/astorgayabogados/internal/entity"
)

type EmailRequest struct {
	Type string          `json:"type" validate:"required,oneof=contact lead"`
	Data json.RawMessage `json:"data" validate:"required"`
}

type ContactFormData struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty" validate:"max=40"`
	Message string `json:"message" validate:"required,max=5000"`
}

type LeadEmailData struct {
	Summary          entity.LeadSummary  `json:"summary" validate:"required"`
	ContactRequested bool                `json:"requestedContact"`
	Satisfaction     entity.Satisfaction `json:"satisfaction,omitempty" validate:"omitempty,oneof=positive neutral negative"`
}

type EmailResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
