package http

import (
	"github.com/google/uuid"

	profileUC "github.com/trafylabs/academy-api/internal/application/usecase/profile"
	"github.com/trafylabs/academy-api/internal/domain/identity"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type FederatedLoginRequest struct {
	Provider string `json:"provider"`
	Subject  string `json:"subject"`
	Email    string `json:"email"`
}

type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

func ToUserDTO(id *identity.Identity) UserDTO {
	return UserDTO{
		ID:        id.ID,
		Email:     id.Email,
		FirstName: id.DisplayName(),
	}
}

type ProfileDTO struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Country       string `json:"country"`
	ProfilePicURL string `json:"profile_pic_url"`
}

func ToProfileDTO(f profileUC.Form) ProfileDTO {
	return ProfileDTO{
		FirstName:     f.FirstName,
		LastName:      f.LastName,
		Email:         f.Email,
		Phone:         f.Phone,
		Country:       f.Country,
		ProfilePicURL: f.ProfilePicURL,
	}
}

type EnquiryRequest struct {
	Course    string `json:"course"`
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	SinkURL   string `json:"sink_url"`
}

type NavigateRequest struct {
	Route string `json:"route"`
}
