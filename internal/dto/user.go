package dto

import "github.com/yukikurage/project-tracker-api/internal/models"

// UserDTO is the public view of a user
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// AuthorDTO is the author annotation attached to comments
type AuthorDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// MessageResponse is a bare confirmation
type MessageResponse struct {
	Message string `json:"message"`
}

// UploadResponse is returned after storing an image
type UploadResponse struct {
	Message  string `json:"message"`
	ImageURL string `json:"imageUrl"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}
