package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"
	"time"

	"cinerent/internal/models"
	"cinerent/internal/repositories"
	"cinerent/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
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

func (m *MockUserRepository) GetByGoogleID(googleID string) (*models.User, error) {
	args := m.Called(googleID)
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

// TestMain suppresses logging during tests for cleaner output.
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

const testStaffCode = "9999"

func TestAuthService_RegisterUser_RoleFromStaffCode(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", testStaffCode, nil)

	// No code: role public.
	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "password123"}
	mockRepo.On("GetByUsername", "alice").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", "alice@example.com").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user, "")
	assert.NoError(t, err)
	assert.Equal(t, models.RolePublic, user.Role)

	// Wrong code: still public.
	user = &models.User{Username: "bob", Email: "bob@example.com", Password: "password123"}
	mockRepo.On("GetByUsername", "bob").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", "bob@example.com").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err = authService.RegisterUser(user, "0000")
	assert.NoError(t, err)
	assert.Equal(t, models.RolePublic, user.Role)

	// Correct code: staff.
	user = &models.User{Username: "carol", Email: "carol@example.com", Password: "password123"}
	mockRepo.On("GetByUsername", "carol").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", "carol@example.com").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err = authService.RegisterUser(user, testStaffCode)
	assert.NoError(t, err)
	assert.Equal(t, models.RoleStaff, user.Role)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_HashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", testStaffCode, nil)

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "password123"}
	mockRepo.On("GetByUsername", "alice").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", "alice@example.com").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user, "")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_Conflicts(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", testStaffCode, nil)

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "password123"}

	// Username already taken.
	mockRepo.On("GetByUsername", "alice").Return(&models.User{ID: "1"}, nil).Once()
	err := authService.RegisterUser(user, "")
	assert.ErrorIs(t, err, services.ErrConflict)

	// Email already registered.
	mockRepo.On("GetByUsername", "alice").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", "alice@example.com").Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user, "")
	assert.ErrorIs(t, err, services.ErrConflict)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_RegisterUser_ConcurrentDuplicateIsConflict(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", testStaffCode, nil)

	// A concurrent registration can pass the existence checks and then trip
	// the unique index on insert; that is still a conflict, not a 500.
	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "password123"}
	mockRepo.On("GetByUsername", "alice").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", "alice@example.com").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(fmt.Errorf("user alice: %w", repositories.ErrDuplicate)).Once()

	err := authService.RegisterUser(user, "")
	assert.ErrorIs(t, err, services.ErrConflict)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", testStaffCode, nil)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "alice",
		Email:    "alice@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleStaff,
	}

	// Successful login carries id and role in the claims.
	mockRepo.On("GetByUsername", "alice").Return(user, nil).Once()
	token, loggedIn, err := authService.LoginUser("alice", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleStaff, loggedIn.Role)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte("test_jwt_secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, models.RoleStaff, claims["role"])

	// Wrong password.
	mockRepo.On("GetByUsername", "alice").Return(user, nil).Once()
	_, _, err = authService.LoginUser("alice", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Unknown user gets the same generic error.
	mockRepo.On("GetByUsername", "nobody").Return(nil, fmt.Errorf("not found")).Once()
	_, _, err = authService.LoginUser("nobody", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	// Google-only account has no credential to check.
	mockRepo.On("GetByUsername", "gonly").Return(&models.User{ID: "2", Username: "gonly", GoogleID: "g-1"}, nil).Once()
	_, _, err = authService.LoginUser("gonly", "anything")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", testStaffCode, nil)

	// Valid token.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"role":    models.RolePublic,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte("test_jwt_secret"))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, models.RolePublic, claims["role"])

	// Garbage token.
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)

	// Expired token.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"role":    models.RolePublic,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expired.SignedString([]byte("test_jwt_secret"))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)

	// Token signed with a different secret.
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	otherTokenString, _ := other.SignedString([]byte("other_secret"))
	_, err = authService.ValidateToken(otherTokenString)
	assert.Error(t, err)
}

// rerouteTransport sends every outbound request to the fake server, so the
// fixed userinfo URL is served locally too.
type rerouteTransport struct {
	target *url.URL
}

func (rt rerouteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = rt.target.Scheme
	clone.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(clone)
}

// fakeGoogle serves the token and userinfo endpoints for callback tests and
// returns an oauth config pointed at the fake plus a context whose HTTP client
// reroutes everything to it.
func fakeGoogle(t *testing.T, userinfo map[string]string) (*oauth2.Config, context.Context) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"fake-access-token","token_type":"bearer"}`)
	})
	mux.HandleFunc("/oauth2/v2/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(userinfo)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	target, err := url.Parse(srv.URL)
	assert.NoError(t, err)

	cfg := &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:3000/callback",
		Endpoint: oauth2.Endpoint{
			AuthURL:  srv.URL + "/auth",
			TokenURL: srv.URL + "/token",
		},
	}
	client := &http.Client{Transport: rerouteTransport{target: target}}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
	return cfg, ctx
}

func TestAuthService_GoogleCallback_ExistingGoogleAccount(t *testing.T) {
	cfg, ctx := fakeGoogle(t, map[string]string{
		"id": "g-123", "email": "alice@example.com", "name": "Alice",
	})
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", testStaffCode, cfg)

	user := &models.User{ID: "user-123", Username: "alice", Email: "alice@example.com", GoogleID: "g-123", Role: models.RolePublic}
	mockRepo.On("GetByGoogleID", "g-123").Return(user, nil).Once()

	token, err := authService.GoogleCallback(ctx, "auth-code")
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_GoogleCallback_AttachesToExistingEmail(t *testing.T) {
	cfg, ctx := fakeGoogle(t, map[string]string{
		"id": "g-123", "email": "alice@example.com", "name": "Alice",
	})
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", testStaffCode, cfg)

	// First Google login for an account registered with a password: the
	// Google id is attached to the existing identity, not duplicated.
	existing := &models.User{ID: "user-123", Username: "alice", Email: "alice@example.com", Role: models.RolePublic}
	mockRepo.On("GetByGoogleID", "g-123").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", "alice@example.com").Return(existing, nil).Once()
	mockRepo.On("Update", mock.MatchedBy(func(u *models.User) bool {
		return u.ID == "user-123" && u.GoogleID == "g-123"
	})).Return(nil).Once()

	token, err := authService.GoogleCallback(ctx, "auth-code")
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])

	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_GoogleCallback_CreatesFreshAccount(t *testing.T) {
	cfg, ctx := fakeGoogle(t, map[string]string{
		"id": "g-456", "email": "newcomer@example.com", "name": "",
	})
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", testStaffCode, cfg)

	mockRepo.On("GetByGoogleID", "g-456").Return(nil, fmt.Errorf("not found")).Once()
	mockRepo.On("GetByEmail", "newcomer@example.com").Return(nil, fmt.Errorf("not found")).Once()
	// No display name: the username falls back to the email's local part.
	mockRepo.On("Create", mock.MatchedBy(func(u *models.User) bool {
		return u.GoogleID == "g-456" &&
			u.Email == "newcomer@example.com" &&
			u.Username == "newcomer" &&
			u.Role == models.RolePublic &&
			u.Password == ""
	})).Return(nil).Once()

	token, err := authService.GoogleCallback(ctx, "auth-code")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_GoogleCallback_NotConfigured(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", testStaffCode, nil)

	_, err := authService.GoogleLoginURL("state")
	assert.Error(t, err)

	_, err = authService.GoogleCallback(context.Background(), "auth-code")
	assert.Error(t, err)
}
