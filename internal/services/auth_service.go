package services

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"camarao/internal/apperrors"
	"camarao/internal/models"
	"camarao/internal/repositories"
	"camarao/pkg/rabbitmq"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

// AuthService handles business logic for authentication, password
// recovery and user administration.
type AuthService struct {
	userRepo     repositories.UserRepository
	jwtSecret    []byte
	tokenDurat   time.Duration
	mqClient     *rabbitmq.Client
	resetBaseURL string
}

// NewAuthService creates a new AuthService. mqClient may be nil, in which
// case reset notifications are skipped (token storage still happens).
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, mqClient *rabbitmq.Client, resetBaseURL string) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecret:    []byte(jwtSecret),
		tokenDurat:   time.Hour, // expiry forces re-login, no refresh tokens
		mqClient:     mqClient,
		resetBaseURL: strings.TrimRight(resetBaseURL, "/"),
	}
}

// RegisterUser registers a new user with the default role, hashing the
// password before it is stored.
func (s *AuthService) RegisterUser(username, email, password string) (*models.User, error) {
	return s.createUser(username, email, password, "user")
}

// CreateUser creates a user with an explicit role (admin operation).
func (s *AuthService) CreateUser(username, email, password, role string) (*models.User, error) {
	if role == "" {
		role = "user"
	}
	return s.createUser(username, email, password, role)
}

func (s *AuthService) createUser(username, email, password, role string) (*models.User, error) {
	if taken, err := s.identityTaken(username, email); err != nil {
		return nil, err
	} else if taken {
		return nil, apperrors.Conflict("User already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// LoginUser authenticates a user and returns a signed JWT plus the user
// record. The error never reveals whether the username exists.
func (s *AuthService) LoginUser(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, user, nil
}

// ValidateToken parses and validates a JWT, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// CurrentUser loads the caller's own user record.
func (s *AuthService) CurrentUser(userID string) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

// ForgotPassword issues a single-use reset token for the given email and
// publishes a notification event. An unknown email is not an error, so the
// endpoint never reveals whether an account exists.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)
	expires := time.Now().Add(resetTokenTTL)

	// A new request overwrites any outstanding token.
	user.ResetPasswordToken = &token
	user.ResetPasswordExpires = &expires
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	s.publishResetEvent(user, token)
	return nil
}

// ResetPassword consumes a reset token: it hashes the new password and
// clears both token fields so the token cannot be used again.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	user, err := s.userRepo.GetByResetToken(token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrInvalidToken
		}
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hashedPassword)
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// ListUsers returns every user (admin operation). Password and reset
// fields never serialize.
func (s *AuthService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// UpdateUser partially updates a user's profile (admin operation). An
// admin cannot change their own role away from admin.
func (s *AuthService) UpdateUser(actorID, targetID string, username, email, role *string) (*models.User, error) {
	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}

	if targetID == actorID && role != nil && *role != "admin" {
		return nil, apperrors.Validation("Cannot change your own admin role")
	}

	if username != nil && *username != user.Username {
		if existing, err := s.userRepo.GetByUsername(*username); err == nil && existing != nil {
			return nil, apperrors.Conflict("Username already exists")
		}
		user.Username = *username
	}
	if email != nil && *email != user.Email {
		if existing, err := s.userRepo.GetByEmail(*email); err == nil && existing != nil {
			return nil, apperrors.Conflict("Email already exists")
		}
		user.Email = *email
	}
	if role != nil {
		user.Role = *role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// ChangeUserPassword sets a new password for a user (admin operation).
func (s *AuthService) ChangeUserPassword(targetID, password string) error {
	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

// DeleteUser removes a user (admin operation). An admin cannot delete
// their own account.
func (s *AuthService) DeleteUser(actorID, targetID string) error {
	if actorID == targetID {
		return apperrors.Validation("Cannot delete your own account")
	}
	if _, err := s.userRepo.GetByID(targetID); err != nil {
		return err
	}
	return s.userRepo.Delete(targetID)
}

func (s *AuthService) identityTaken(username, email string) (bool, error) {
	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return true, nil
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return true, nil
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}
	return false, nil
}

// publishResetEvent emits the recovery link over the notification
// exchange. Delivery is fire-and-forget: the token is already stored, so
// a broker failure only costs the email.
func (s *AuthService) publishResetEvent(user *models.User, token string) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping reset notification.")
		return
	}

	event := map[string]interface{}{
		"email":    user.Email,
		"username": user.Username,
		"resetUrl": fmt.Sprintf("%s/reset-password/%s", s.resetBaseURL, token),
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal reset event: %v", err)
		return
	}
	if err := s.mqClient.Publish(rabbitmq.NotificationsExchange, rabbitmq.PasswordResetRoutingKey, body); err != nil {
		log.Printf("Warning: Failed to publish reset notification for %s: %v", user.Email, err)
	}
}
