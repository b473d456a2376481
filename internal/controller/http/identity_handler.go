package http

import (
	"net/http"

	"sparkz/internal/entity"
	"sparkz/internal/usecase"
	"sparkz/pkg/logger"

	"github.com/gin-gonic/gin"
)

type IdentityHandler struct {
	identityUseCase usecase.IdentityUseCase
	logger          *logger.Logger
}

func NewIdentityHandler(identityUseCase usecase.IdentityUseCase, logger *logger.Logger) *IdentityHandler {
	return &IdentityHandler{
		identityUseCase: identityUseCase,
		logger:          logger,
	}
}

type CredentialsRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
}

type SessionResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Login godoc
// @Summary      Start a session
// @Description  Start a session for the given email and name. Always succeeds; there are no passwords.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body CredentialsRequest true "Session credentials"
// @Success      200  {object}  SessionResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /auth/login [post]
func (h *IdentityHandler) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.identityUseCase.Login(req.Email, req.Name)
	if err != nil {
		h.logger.Error("Failed to log in: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Token: token, User: user})
}

// Register godoc
// @Summary      Register a new account
// @Description  Create an account for the given email and name. New accounts always start as unverified users.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body CredentialsRequest true "Registration data"
// @Success      201  {object}  SessionResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /auth/register [post]
func (h *IdentityHandler) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, token, err := h.identityUseCase.Register(req.Email, req.Name)
	if err != nil {
		h.logger.Error("Failed to register: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register"})
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{Token: token, User: user})
}

// Logout godoc
// @Summary      End the session
// @Description  Clear the active session and its persisted record
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *IdentityHandler) Logout(c *gin.Context) {
	if err := h.identityUseCase.Logout(); err != nil {
		h.logger.Error("Failed to log out: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Upgrade godoc
// @Summary      Become a developer
// @Description  Upgrade the current user to a verified developer. Role and verification flip together.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SessionResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /auth/upgrade [post]
func (h *IdentityHandler) Upgrade(c *gin.Context) {
	user, token, err := h.identityUseCase.UpgradeToDeveloper()
	if err != nil {
		h.logger.Error("Failed to upgrade user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session", "redirect": "/login"})
		return
	}

	c.JSON(http.StatusOK, SessionResponse{Token: token, User: user})
}

// Me godoc
// @Summary      Current session
// @Description  Return the user behind the active session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.User
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *IdentityHandler) Me(c *gin.Context) {
	user := h.identityUseCase.Current()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session", "redirect": "/login"})
		return
	}

	c.JSON(http.StatusOK, user)
}
