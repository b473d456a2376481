package http

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"sparkz/internal/entity"
	"sparkz/internal/usecase"
	"sparkz/pkg/logger"
	"sparkz/pkg/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	catalogUseCase  usecase.CatalogUseCase
	identityUseCase usecase.IdentityUseCase
	s3Client        *s3.Client
	pageSize        int
	logger          *logger.Logger
}

func NewCatalogHandler(catalogUseCase usecase.CatalogUseCase, identityUseCase usecase.IdentityUseCase, s3Client *s3.Client, pageSize int, logger *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUseCase:  catalogUseCase,
		identityUseCase: identityUseCase,
		s3Client:        s3Client,
		pageSize:        pageSize,
		logger:          logger,
	}
}

type PublishProjectRequest struct {
	Title         string  `form:"title"`
	Description   string  `form:"description"`
	Category      string  `form:"category"`
	Author        string  `form:"author"`
	DonationGoal  float64 `form:"donation_goal"`
	RepositoryURL string  `form:"repository_url"`
}

// ListProjects godoc
// @Summary      List projects
// @Description  Browse the catalog with optional category and search filters, paginated
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        category query string false "Category filter (TODOS, APP, JUEGO, LIBRO)"
// @Param        search query string false "Case-insensitive match on title or author"
// @Param        page query int false "1-indexed page"
// @Param        page_size query int false "Projects per page"
// @Success      200  {object}  map[string]interface{}
// @Router       /projects [get]
func (h *CatalogHandler) ListProjects(c *gin.Context) {
	category := entity.Category(c.DefaultQuery("category", string(entity.CategoryAll)))
	if !entity.ValidCategory(category) {
		category = entity.CategoryAll
	}
	search := c.Query("search")

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	pageSize := h.pageSize
	if sizeStr := c.Query("page_size"); sizeStr != "" {
		if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
			pageSize = s
		}
	}

	matched := h.catalogUseCase.Query(category, search)
	projects, totalPages := h.catalogUseCase.Page(matched, page, pageSize)

	c.JSON(http.StatusOK, gin.H{
		"projects":    projects,
		"count":       len(projects),
		"total":       len(matched),
		"page":        page,
		"total_pages": totalPages,
	})
}

// GetProject godoc
// @Summary      Get project by ID
// @Description  Get project details by ID
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200  {object}  entity.Project
// @Failure      404  {object}  map[string]string
// @Router       /projects/{id} [get]
func (h *CatalogHandler) GetProject(c *gin.Context) {
	project, err := h.catalogUseCase.GetProject(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found", "redirect": "/"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// PublishProject godoc
// @Summary      Publish a project
// @Description  Publish a new project. Only verified developers can publish; an optional cover image can be attached.
// @Tags         projects
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title formData string true "Project title"
// @Param        description formData string true "Project description"
// @Param        category formData string true "Category (APP, JUEGO, LIBRO)"
// @Param        author formData string true "Author name"
// @Param        donation_goal formData number true "Funding goal"
// @Param        repository_url formData string false "Repository URL (http:// or https://)"
// @Param        cover formData file false "Cover image (jpg/jpeg/png)"
// @Success      201  {object}  entity.Project
// @Failure      400  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /projects [post]
func (h *CatalogHandler) PublishProject(c *gin.Context) {
	user := h.identityUseCase.Current()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Debes iniciar sesión para publicar", "redirect": "/login"})
		return
	}
	if !user.CanPublish() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Necesitas una cuenta de desarrollador verificada", "redirect": "/become-developer"})
		return
	}

	var req PublishProjectRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := usecase.AddProjectInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      entity.Category(req.Category),
		Author:        req.Author,
		DonationGoal:  req.DonationGoal,
		RepositoryURL: req.RepositoryURL,
	}

	if errs := usecase.ValidateProject(input); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if cover, err := c.FormFile("cover"); err == nil && h.s3Client != nil {
		url, uploadErr := h.uploadCover(cover)
		if uploadErr != nil {
			h.logger.Error("Failed to upload cover image: %v", uploadErr)
		} else {
			input.ImageURL = url
		}
	}

	project, err := h.catalogUseCase.AddProject(input)
	if err != nil {
		h.logger.Error("Failed to publish project: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (h *CatalogHandler) uploadCover(cover *multipart.FileHeader) (string, error) {
	src, err := cover.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := filepath.Ext(cover.Filename)
	key := fmt.Sprintf("covers/%s%s", uuid.New().String(), ext)
	contentType := cover.Header.Get("Content-Type")
	return h.s3Client.UploadFile(key, src, contentType)
}

// LikeProject godoc
// @Summary      Like a project
// @Description  Add a like to a project. Likes are never de-duplicated.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200  {object}  map[string]string
// @Router       /projects/{id}/like [post]
func (h *CatalogHandler) LikeProject(c *gin.Context) {
	h.catalogUseCase.LikeProject(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "Like counted"})
}
