package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sparkz/internal/entity"
	"sparkz/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestLogin(t *testing.T) {
	mockIdentity := new(MockIdentityUseCase)
	handler := NewIdentityHandler(mockIdentity, logger.New())

	router := setupTestRouter()
	router.POST("/auth/login", handler.Login)

	user := &entity.User{
		ID:         "u1",
		Name:       "Ana",
		Email:      "studio-dev@example.com",
		Role:       entity.RoleDeveloper,
		IsVerified: true,
	}
	mockIdentity.On("Login", "studio-dev@example.com", "Ana").Return(user, "token-123", nil)

	payload := `{"email":"studio-dev@example.com","name":"Ana"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response SessionResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "token-123", response.Token)
	assert.Equal(t, entity.RoleDeveloper, response.User.Role)

	mockIdentity.AssertExpectations(t)
}

func TestLogin_InvalidBody(t *testing.T) {
	mockIdentity := new(MockIdentityUseCase)
	handler := NewIdentityHandler(mockIdentity, logger.New())

	router := setupTestRouter()
	router.POST("/auth/login", handler.Login)

	payload := `{"email":"not-an-email","name":""}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/login", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockIdentity.AssertNotCalled(t, "Login")
}

func TestRegister(t *testing.T) {
	mockIdentity := new(MockIdentityUseCase)
	handler := NewIdentityHandler(mockIdentity, logger.New())

	router := setupTestRouter()
	router.POST("/auth/register", handler.Register)

	user := &entity.User{
		ID:    "u1",
		Name:  "Bob",
		Email: "bob@example.com",
		Role:  entity.RoleUser,
	}
	mockIdentity.On("Register", "bob@example.com", "Bob").Return(user, "token-456", nil)

	payload := `{"email":"bob@example.com","name":"Bob"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/register", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var response SessionResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.False(t, response.User.IsVerified)

	mockIdentity.AssertExpectations(t)
}

func TestUpgrade_NoSession(t *testing.T) {
	mockIdentity := new(MockIdentityUseCase)
	handler := NewIdentityHandler(mockIdentity, logger.New())

	router := setupTestRouter()
	router.POST("/auth/upgrade", handler.Upgrade)

	mockIdentity.On("UpgradeToDeveloper").Return(nil, "", nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/upgrade", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "/login", response["redirect"])
}

func TestMe_NoSession(t *testing.T) {
	mockIdentity := new(MockIdentityUseCase)
	handler := NewIdentityHandler(mockIdentity, logger.New())

	router := setupTestRouter()
	router.GET("/auth/me", handler.Me)

	mockIdentity.On("Current").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/auth/me", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	mockIdentity := new(MockIdentityUseCase)
	handler := NewIdentityHandler(mockIdentity, logger.New())

	router := setupTestRouter()
	router.POST("/auth/logout", handler.Logout)

	mockIdentity.On("Logout").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/logout", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockIdentity.AssertExpectations(t)
}
