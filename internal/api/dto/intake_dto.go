package dto

import (
	"time"

	"github.com/clinic-kit/clinic-service/internal/domain"
)

// CallbackIntakeRequest payload from the public landing page.
type CallbackIntakeRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Source  string `json:"source"`
}

// CallbackResponse is the admin queue view of a callback.
type CallbackResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Contacted bool      `json:"contacted"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCallbackResponse maps a domain callback.
func NewCallbackResponse(cb *domain.CallbackRequest) CallbackResponse {
	return CallbackResponse{
		ID:        cb.ID,
		Name:      cb.Name,
		Phone:     cb.Phone,
		Message:   cb.Message,
		Contacted: cb.Contacted,
		CreatedAt: cb.CreatedAt,
	}
}

// FeedbackRequest payload from a patient.
type FeedbackRequest struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Rating  int    `json:"rating"`
}

// FeedbackResponse is the public feedback view.
type FeedbackResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewFeedbackResponse maps a domain feedback entry.
func NewFeedbackResponse(f *domain.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:        f.ID,
		Name:      f.Name,
		Message:   f.Message,
		Rating:    f.Rating,
		CreatedAt: f.CreatedAt,
	}
}
