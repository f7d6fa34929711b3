package handlers

import (
	"log"

	"camarao/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication and user
// administration.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/forgot-password", h.HandleForgotPassword)
	authRoutes.Post("/reset-password/:token", h.HandleResetPassword)
}

// RegisterProtectedRoutes registers routes requiring a bearer token.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Get("/auth/me", h.HandleMe)
}

// RegisterAdminRoutes registers the admin-only user management routes.
func (h *AuthHandler) RegisterAdminRoutes(router fiber.Router) {
	users := router.Group("/auth/users")
	users.Get("/", h.HandleListUsers)
	users.Post("/", h.HandleCreateUser)
	users.Put("/:id", h.HandleUpdateUser)
	users.Put("/:id/password", h.HandleChangePassword)
	users.Delete("/:id", h.HandleDeleteUser)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": registerValidationMessage(err),
		})
	}

	if _, err := h.authService.RegisterUser(req.Username, req.Email, req.Password); err != nil {
		return writeError(c, err, "User not found", "Server error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully"})
}

func registerValidationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "Validation failed"
	}
	e := validationErrors[0]
	switch {
	case e.Tag() == "required":
		return "All fields are required"
	case e.Field() == "ConfirmPassword":
		return "Passwords do not match"
	case e.Field() == "Password":
		return "Password must be at least 6 characters long"
	case e.Field() == "Email":
		return "Invalid email address"
	default:
		return "Validation failed"
	}
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Username and password are required"})
	}

	token, user, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		log.Printf("Login failed for user %s: %v", req.Username, err)
		return writeError(c, err, "User not found", "Server error")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// HandleForgotPassword issues a reset token. The response is the same
// whether or not the email is registered.
func (h *AuthHandler) HandleForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email is required"})
	}

	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return writeError(c, err, "User not found", "Server error")
	}
	return c.JSON(fiber.Map{"message": "Password reset email sent"})
}

// HandleResetPassword consumes a reset token and sets the new password.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Password is required"})
	}
	if len(req.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Password must be at least 6 characters long"})
	}

	if err := h.authService.ResetPassword(c.Params("token"), req.Password); err != nil {
		return writeError(c, err, "User not found", "Server error")
	}
	return c.JSON(fiber.Map{"message": "Password reset successfully"})
}

// HandleMe returns the authenticated caller's own record.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)
	user, err := h.authService.CurrentUser(userID)
	if err != nil {
		return writeError(c, err, "User not found", "Server error")
	}
	return c.JSON(user)
}

// HandleListUsers returns every user (admin only).
func (h *AuthHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.authService.ListUsers()
	if err != nil {
		return writeError(c, err, "User not found", "Server error")
	}
	return c.JSON(users)
}

// CreateUserRequest represents the admin user-creation body.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// HandleCreateUser creates a user with an explicit role (admin only).
func (h *AuthHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if err := h.validate.Struct(req); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			if validationErrors[0].Field() == "Password" && validationErrors[0].Tag() == "min" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Password must be at least 6 characters long"})
			}
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Username, email, and password are required"})
	}

	user, err := h.authService.CreateUser(req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		return writeError(c, err, "User not found", "Server error")
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// UpdateUserRequest represents the admin user-update body; nil fields are
// left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"role" validate:"omitempty,oneof=user admin"`
}

// HandleUpdateUser partially updates a user's profile (admin only).
func (h *AuthHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.Role != nil && *req.Role != "user" && *req.Role != "admin" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid role"})
	}

	actorID, _ := c.Locals("userId").(string)
	user, err := h.authService.UpdateUser(actorID, c.Params("id"), req.Username, req.Email, req.Role)
	if err != nil {
		return writeError(c, err, "User not found", "Server error")
	}
	return c.JSON(user)
}

// HandleChangePassword sets a new password for a user (admin only).
func (h *AuthHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if len(req.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Password must be at least 6 characters long"})
	}

	if err := h.authService.ChangeUserPassword(c.Params("id"), req.Password); err != nil {
		return writeError(c, err, "User not found", "Server error")
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// HandleDeleteUser removes a user (admin only).
func (h *AuthHandler) HandleDeleteUser(c *fiber.Ctx) error {
	actorID, _ := c.Locals("userId").(string)
	if err := h.authService.DeleteUser(actorID, c.Params("id")); err != nil {
		return writeError(c, err, "User not found", "Server error")
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
