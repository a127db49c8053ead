package dto

import "github.com/clinic-kit/clinic-service/internal/domain"

// AddDoctorRequest payload for roster additions.
type AddDoctorRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Password   string `json:"password"`
	Speciality string `json:"speciality"`
}

// EditDoctorRequest payload for roster edits.
type EditDoctorRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Speciality string `json:"speciality"`
}

// UserResponse is the roster view of an account. Credentials and reset
// material are never serialized.
type UserResponse struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	Speciality string `json:"speciality,omitempty"`
}

// NewUserResponse maps a domain account.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       string(u.Role),
		Speciality: u.Speciality,
	}
}

// NewUserResponses maps a roster listing.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
