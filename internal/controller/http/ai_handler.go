package http

import (
	"net/http"

	"sparkz/internal/usecase"
	"sparkz/pkg/ai"
	"sparkz/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	describer       *ai.Describer
	identityUseCase usecase.IdentityUseCase
	logger          *logger.Logger
}

func NewAIHandler(describer *ai.Describer, identityUseCase usecase.IdentityUseCase, logger *logger.Logger) *AIHandler {
	return &AIHandler{
		describer:       describer,
		identityUseCase: identityUseCase,
		logger:          logger,
	}
}

type DescribeRequest struct {
	Title    string `json:"title" binding:"required"`
	Category string `json:"category" binding:"required"`
	Keywords string `json:"keywords"`
}

// Describe godoc
// @Summary      Generate a project description
// @Description  Generate a short Spanish marketing description for a project draft. Falls back to a fixed message when generation is unavailable.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body DescribeRequest true "Project draft"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /ai/describe [post]
func (h *AIHandler) Describe(c *gin.Context) {
	user := h.identityUseCase.Current()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Debes iniciar sesión", "redirect": "/login"})
		return
	}
	if !user.CanPublish() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Necesitas una cuenta de desarrollador verificada", "redirect": "/become-developer"})
		return
	}

	var req DescribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	description := h.describer.ProjectDescription(c.Request.Context(), req.Title, req.Category, req.Keywords)
	c.JSON(http.StatusOK, gin.H{"description": description})
}
