package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-notification-service/internal/api/dto"
	"github.com/spec-kit/user-notification-service/internal/service"
	apperrors "github.com/spec-kit/user-notification-service/pkg/util"
)

// UsersHandler exposes registration, login and user CRUD.
type UsersHandler struct {
	users  *service.UserService
	redact bool
}

// NewUsersHandler constructs handler. redact blanks password hashes in responses.
func NewUsersHandler(userService *service.UserService, redact bool) *UsersHandler {
	return &UsersHandler{users: userService, redact: redact}
}

// Register handles POST /users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	err := h.users.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User registered successfully"})
}

// Login handles POST /users/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.UserLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.users.Login(c.UserContext(), service.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}
	return c.JSON(dto.LoginResponse{Token: result.Token, Message: "Login successful"})
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.UserViews(users, h.redact))
}

// Get handles GET /users/:userId.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.UserView(*user, h.redact))
}

// Update handles PUT /users/:userId.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.Update(c.UserContext(), c.Params("userId"), req)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserView(*user, h.redact))
}

// Delete handles DELETE /users/:userId.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	result, err := h.users.Delete(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(result)
}
