package services_test

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"camarao/internal/apperrors"
	"camarao/internal/models"
	"camarao/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetToken(token string) (*models.User, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func newTestAuthService(mockRepo *MockUserRepository) *services.AuthService {
	return services.NewAuthService(mockRepo, "test_jwt_secret", nil, "http://localhost:3000")
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	// Test successful registration
	mockRepo.On("GetByUsername", "testuser").Return(nil, apperrors.ErrNotFound).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, apperrors.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.RegisterUser("testuser", "test@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "user", user.Role)
	// The stored password must be a bcrypt hash, never the plaintext
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Test username already taken
	mockRepo.On("GetByUsername", "testuser").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.RegisterUser("testuser", "test@example.com", "password123")
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Contains(t, err.Error(), "User already exists")
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByUsername", "otheruser").Return(nil, apperrors.ErrNotFound).Once()
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.RegisterUser("otheruser", "test@example.com", "password123")
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_CreateUser_Role(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	mockRepo.On("GetByUsername", "boss").Return(nil, apperrors.ErrNotFound).Once()
	mockRepo.On("GetByEmail", "boss@example.com").Return(nil, apperrors.ErrNotFound).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.CreateUser("boss", "boss@example.com", "password123", "admin")
	assert.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
	assert.True(t, user.IsAdmin())
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()

	token, loggedIn, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte("test_jwt_secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["userId"])
	assert.Equal(t, user.Username, claims["username"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	_, _, err = authService.LoginUser("testuser", "wrongpassword")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (user not found)
	mockRepo.On("GetByUsername", "nonexistentuser").Return(nil, apperrors.ErrNotFound).Once()
	_, _, err = authService.LoginUser("nonexistentuser", "password123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// A persistence failure surfaces as-is, never as invalid credentials
	mockRepo.On("GetByUsername", "testuser").Return(nil, fmt.Errorf("database error")).Once()
	_, _, err = authService.LoginUser("testuser", "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	// Generate a valid token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   "user-123",
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte("test_jwt_secret"))

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-123", claims["userId"])
	assert.Equal(t, "testuser", claims["username"])

	// Test invalid token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId":   "user-123",
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte("test_jwt_secret"))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestAuthService_ForgotPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	// Unknown email succeeds silently so the endpoint cannot be used to
	// probe which accounts exist
	mockRepo.On("GetByEmail", "unknown@example.com").Return(nil, apperrors.ErrNotFound).Once()
	err := authService.ForgotPassword("unknown@example.com")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Known email stores a fresh token with a future expiry
	user := &models.User{ID: "user-123", Username: "testuser", Email: "test@example.com"}
	var saved *models.User
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		saved = args.Get(0).(*models.User)
	}).Return(nil).Once()

	err = authService.ForgotPassword(user.Email)
	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.NotNil(t, saved.ResetPasswordToken)
	assert.Len(t, *saved.ResetPasswordToken, 64)
	assert.NotNil(t, saved.ResetPasswordExpires)
	assert.True(t, saved.ResetPasswordExpires.After(time.Now()))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ResetPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	token := "deadbeefdeadbeef"
	expires := time.Now().Add(30 * time.Minute)
	user := &models.User{
		ID:                   "user-123",
		Username:             "testuser",
		Email:                "test@example.com",
		Password:             "old-hash",
		ResetPasswordToken:   &token,
		ResetPasswordExpires: &expires,
	}

	// A valid token replaces the password and burns the token
	var saved *models.User
	mockRepo.On("GetByResetToken", token).Return(user, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		saved = args.Get(0).(*models.User)
	}).Return(nil).Once()

	err := authService.ResetPassword(token, "newpassword123")
	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Nil(t, saved.ResetPasswordToken)
	assert.Nil(t, saved.ResetPasswordExpires)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("newpassword123")))
	mockRepo.AssertExpectations(t)

	// An unknown or expired token maps to the generic invalid-token error
	mockRepo.On("GetByResetToken", "bogus").Return(nil, apperrors.ErrNotFound).Once()
	err = authService.ResetPassword("bogus", "newpassword123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpdateUser_SelfDemotion(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	admin := &models.User{ID: "admin-1", Username: "admin", Email: "admin@example.com", Role: "admin"}
	mockRepo.On("GetByID", admin.ID).Return(admin, nil).Once()

	role := "user"
	_, err := authService.UpdateUser(admin.ID, admin.ID, nil, nil, &role)
	assert.Error(t, err)
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "Cannot change your own admin role")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_UpdateUser_DuplicateUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	target := &models.User{ID: "user-2", Username: "bob", Email: "bob@example.com", Role: "user"}
	mockRepo.On("GetByID", target.ID).Return(target, nil).Once()
	mockRepo.On("GetByUsername", "alice").Return(&models.User{ID: "user-3"}, nil).Once()

	newName := "alice"
	_, err := authService.UpdateUser("admin-1", target.ID, &newName, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_DeleteUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	// Self-deletion is refused before touching the repository
	err := authService.DeleteUser("admin-1", "admin-1")
	assert.Error(t, err)
	var validationErr *apperrors.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	// Deleting another user goes through
	mockRepo.On("GetByID", "user-2").Return(&models.User{ID: "user-2"}, nil).Once()
	mockRepo.On("Delete", "user-2").Return(nil).Once()
	err = authService.DeleteUser("admin-1", "user-2")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
