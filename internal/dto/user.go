package dto

import "github.com/taskbridge/taskbridge-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID                 uint64      `json:"id"`
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	Role               models.Role `json:"role"`
	Suspended          bool        `json:"suspended"`
	Available          bool        `json:"available"`
	AvailabilityStatus string      `json:"availabilityStatus,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:                 user.ID,
		Name:               user.Name,
		Email:              user.Email,
		Role:               user.Role,
		Suspended:          user.Suspended,
		Available:          user.Available,
		AvailabilityStatus: user.AvailabilityStatus,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
