package dto

import "github.com/comfortzone/comfortzone-api/internal/models"

// PublicUserDTO is the projection of a user shown to other users.
type PublicUserDTO struct {
	ID             uint64  `json:"id"`
	Username       string  `json:"username"`
	ProfilePicture *string `json:"profilePicture"`
}

// MeDTO is the caller's own account projection.
type MeDTO struct {
	ID             uint64  `json:"id"`
	Email          string  `json:"email"`
	Username       string  `json:"username"`
	ProfilePicture *string `json:"profilePicture"`
	EmailVerified  bool    `json:"emailVerified"`
	Bio            *string `json:"bio"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Token          string  `json:"token"`
	ID             uint64  `json:"id"`
	Email          string  `json:"email"`
	Username       string  `json:"username"`
	ProfilePicture *string `json:"profilePicture"`
	EmailVerified  bool    `json:"emailVerified"`
}

// ProfileDTO is a public profile with the derived streak.
type ProfileDTO struct {
	ID             uint64  `json:"id"`
	Username       string  `json:"username"`
	ProfilePicture *string `json:"profilePicture"`
	Bio            *string `json:"bio"`
	Streak         int     `json:"streak"`
}

// ToPublicUserDTO converts a user to its public projection
func ToPublicUserDTO(user models.User) PublicUserDTO {
	return PublicUserDTO{
		ID:             user.ID,
		Username:       user.Username,
		ProfilePicture: user.ProfilePicture,
	}
}

// ToMeDTO converts a user to the caller's own projection
func ToMeDTO(user models.User) MeDTO {
	return MeDTO{
		ID:             user.ID,
		Email:          user.Email,
		Username:       user.Username,
		ProfilePicture: user.ProfilePicture,
		EmailVerified:  user.EmailVerified,
		Bio:            user.Bio,
	}
}

// ToProfileDTO converts a user and streak to a public profile
func ToProfileDTO(user models.User, streak int) ProfileDTO {
	return ProfileDTO{
		ID:             user.ID,
		Username:       user.Username,
		ProfilePicture: user.ProfilePicture,
		Bio:            user.Bio,
		Streak:         streak,
	}
}

// ToPublicUserDTOs converts a slice of users
func ToPublicUserDTOs(users []models.User) []PublicUserDTO {
	dtos := make([]PublicUserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToPublicUserDTO(u)
	}
	return dtos
}
