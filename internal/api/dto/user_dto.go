package dto

import "github.com/spec-kit/user-notification-service/internal/domain"

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Status   string `json:"status,omitempty"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdateRequest carries the supplied fields of a user update.
type UserUpdateRequest = domain.UserPatch

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserView renders a user, blanking the password hash when redact is set.
func UserView(user domain.User, redact bool) domain.User {
	if redact {
		user.Password = ""
	}
	return user
}

// UserViews renders a list of users.
func UserViews(users []domain.User, redact bool) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, user := range users {
		out = append(out, UserView(user, redact))
	}
	return out
}
