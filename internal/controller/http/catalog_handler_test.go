package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"sparkz/internal/entity"
	"sparkz/internal/usecase"
	"sparkz/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func publishForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		writer.WriteField(key, value)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestListProjects(t *testing.T) {
	mockCatalog := new(MockCatalogUseCase)
	handler := NewCatalogHandler(mockCatalog, nil, nil, 12, logger.New())

	router := setupTestRouter()
	router.GET("/projects", handler.ListProjects)

	matched := []*entity.Project{
		{ID: "p1", Title: "Pixel Quest"},
		{ID: "p2", Title: "Pixel Editor"},
	}
	mockCatalog.On("Query", entity.CategoryGame, "pixel").Return(matched)
	mockCatalog.On("Page", matched, 2, 12).Return(matched[1:], 2)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/projects?category=JUEGO&search=pixel&page=2", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["page"])
	assert.Equal(t, float64(2), response["total_pages"])
	assert.Equal(t, float64(1), response["count"])
	assert.Equal(t, float64(2), response["total"])

	mockCatalog.AssertExpectations(t)
}

func TestListProjects_UnknownCategoryFallsBackToAll(t *testing.T) {
	mockCatalog := new(MockCatalogUseCase)
	handler := NewCatalogHandler(mockCatalog, nil, nil, 12, logger.New())

	router := setupTestRouter()
	router.GET("/projects", handler.ListProjects)

	mockCatalog.On("Query", entity.CategoryAll, "").Return([]*entity.Project{})
	mockCatalog.On("Page", []*entity.Project{}, 1, 12).Return([]*entity.Project{}, 0)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/projects?category=BOGUS", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockCatalog.AssertExpectations(t)
}

func TestGetProject_NotFoundRedirectsHome(t *testing.T) {
	mockCatalog := new(MockCatalogUseCase)
	handler := NewCatalogHandler(mockCatalog, nil, nil, 12, logger.New())

	router := setupTestRouter()
	router.GET("/projects/:id", handler.GetProject)

	mockCatalog.On("GetProject", "missing").Return(nil, usecase.ErrProjectNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/projects/missing", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "/", response["redirect"])

	mockCatalog.AssertExpectations(t)
}

func TestPublishProject_RequiresSession(t *testing.T) {
	mockCatalog := new(MockCatalogUseCase)
	mockIdentity := new(MockIdentityUseCase)
	handler := NewCatalogHandler(mockCatalog, mockIdentity, nil, 12, logger.New())

	router := setupTestRouter()
	router.POST("/projects", handler.PublishProject)

	mockIdentity.On("Current").Return(nil)

	body, contentType := publishForm(t, map[string]string{"title": "Pixel Quest"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/projects", body)
	req.Header.Set("Content-Type", contentType)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "/login", response["redirect"])
}

func TestPublishProject_RequiresVerifiedDeveloper(t *testing.T) {
	mockCatalog := new(MockCatalogUseCase)
	mockIdentity := new(MockIdentityUseCase)
	handler := NewCatalogHandler(mockCatalog, mockIdentity, nil, 12, logger.New())

	router := setupTestRouter()
	router.POST("/projects", handler.PublishProject)

	mockIdentity.On("Current").Return(&entity.User{
		ID:    "u1",
		Role:  entity.RoleUser,
		Email: "bob@example.com",
	})

	body, contentType := publishForm(t, map[string]string{"title": "Pixel Quest"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/projects", body)
	req.Header.Set("Content-Type", contentType)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var response map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "/become-developer", response["redirect"])
}

func TestPublishProject_FieldValidation(t *testing.T) {
	mockCatalog := new(MockCatalogUseCase)
	mockIdentity := new(MockIdentityUseCase)
	handler := NewCatalogHandler(mockCatalog, mockIdentity, nil, 12, logger.New())

	router := setupTestRouter()
	router.POST("/projects", handler.PublishProject)

	mockIdentity.On("Current").Return(&entity.User{
		ID:         "u1",
		Role:       entity.RoleDeveloper,
		IsVerified: true,
	})

	body, contentType := publishForm(t, map[string]string{
		"title":          "",
		"description":    "Un RPG retro",
		"category":       "JUEGO",
		"author":         "Indie Works",
		"donation_goal":  "0",
		"repository_url": "ftp://bad",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/projects", body)
	req.Header.Set("Content-Type", contentType)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]map[string]string
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "El título es obligatorio", response["errors"]["title"])
	assert.Equal(t, "La meta debe ser mayor a 0", response["errors"]["donation_goal"])
	assert.NotEmpty(t, response["errors"]["repository_url"])

	mockCatalog.AssertNotCalled(t, "AddProject", mock.Anything)
}

func TestPublishProject_Success(t *testing.T) {
	mockCatalog := new(MockCatalogUseCase)
	mockIdentity := new(MockIdentityUseCase)
	handler := NewCatalogHandler(mockCatalog, mockIdentity, nil, 12, logger.New())

	router := setupTestRouter()
	router.POST("/projects", handler.PublishProject)

	mockIdentity.On("Current").Return(&entity.User{
		ID:         "u1",
		Role:       entity.RoleDeveloper,
		IsVerified: true,
	})

	input := usecase.AddProjectInput{
		Title:        "Pixel Quest",
		Description:  "Un RPG retro",
		Category:     entity.CategoryGame,
		Author:       "Indie Works",
		DonationGoal: 100,
	}
	mockCatalog.On("AddProject", input).Return(&entity.Project{ID: "p1", Title: "Pixel Quest"}, nil)

	body, contentType := publishForm(t, map[string]string{
		"title":         "Pixel Quest",
		"description":   "Un RPG retro",
		"category":      "JUEGO",
		"author":        "Indie Works",
		"donation_goal": "100",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/projects", body)
	req.Header.Set("Content-Type", contentType)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockCatalog.AssertExpectations(t)
}

func TestLikeProject(t *testing.T) {
	mockCatalog := new(MockCatalogUseCase)
	handler := NewCatalogHandler(mockCatalog, nil, nil, 12, logger.New())

	router := setupTestRouter()
	router.POST("/projects/:id/like", handler.LikeProject)

	mockCatalog.On("LikeProject", "p1").Return()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/projects/p1/like", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockCatalog.AssertExpectations(t)
}
