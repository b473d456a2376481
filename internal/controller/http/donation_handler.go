package http

import (
	"errors"
	"net/http"

	"sparkz/internal/entity"
	"sparkz/internal/usecase"
	"sparkz/pkg/logger"

	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	donationUseCase usecase.DonationUseCase
	catalogUseCase  usecase.CatalogUseCase
	logger          *logger.Logger
}

func NewDonationHandler(donationUseCase usecase.DonationUseCase, catalogUseCase usecase.CatalogUseCase, logger *logger.Logger) *DonationHandler {
	return &DonationHandler{
		donationUseCase: donationUseCase,
		catalogUseCase:  catalogUseCase,
		logger:          logger,
	}
}

type OpenDonationRequest struct {
	Amount    float64 `json:"amount"`
	DonorName string  `json:"donor_name"`
}

// OpenProjectDonation godoc
// @Summary      Open a donation flow for a project
// @Description  Open a fresh donation flow targeting a project. The amount is not validated until confirmation.
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body OpenDonationRequest true "Donation details"
// @Success      201  {object}  entity.DonationFlow
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /projects/{id}/donations [post]
func (h *DonationHandler) OpenProjectDonation(c *gin.Context) {
	projectID := c.Param("id")
	if _, err := h.catalogUseCase.GetProject(projectID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found", "redirect": "/"})
		return
	}

	h.openFlow(c, projectID)
}

// OpenPlatformDonation godoc
// @Summary      Open a donation flow for the platform
// @Description  Open a fresh donation flow targeting the platform itself. Platform donations never touch a project.
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        request body OpenDonationRequest true "Donation details"
// @Success      201  {object}  entity.DonationFlow
// @Failure      400  {object}  map[string]string
// @Router       /platform/donations [post]
func (h *DonationHandler) OpenPlatformDonation(c *gin.Context) {
	h.openFlow(c, entity.PlatformDonationID)
}

func (h *DonationHandler) openFlow(c *gin.Context, targetID string) {
	var req OpenDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flow, err := h.donationUseCase.Open(targetID, req.Amount, req.DonorName)
	if err != nil {
		h.logger.Error("Failed to open donation flow: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open donation flow"})
		return
	}

	c.JSON(http.StatusCreated, flow)
}

// GetDonation godoc
// @Summary      Get donation flow state
// @Description  Poll the state of a donation flow (idle, processing, success, closed)
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        id path string true "Donation flow ID"
// @Success      200  {object}  entity.DonationFlow
// @Failure      404  {object}  map[string]string
// @Router       /donations/{id} [get]
func (h *DonationHandler) GetDonation(c *gin.Context) {
	flow, err := h.donationUseCase.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation flow not found"})
		return
	}

	c.JSON(http.StatusOK, flow)
}

// ConfirmDonation godoc
// @Summary      Confirm a donation
// @Description  Confirm a donation flow. The amount must be greater than zero; the flow then runs to completion on its own.
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        id path string true "Donation flow ID"
// @Success      200  {object}  entity.DonationFlow
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /donations/{id}/confirm [post]
func (h *DonationHandler) ConfirmDonation(c *gin.Context) {
	flow, err := h.donationUseCase.Confirm(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrFlowNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation flow not found"})
		case errors.Is(err, usecase.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": "El monto debe ser mayor a 0"})
		case errors.Is(err, usecase.ErrAlreadyConfirmed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to confirm donation: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm donation"})
		}
		return
	}

	c.JSON(http.StatusOK, flow)
}

// CancelDonation godoc
// @Summary      Cancel a donation
// @Description  Discard a donation flow that has not been confirmed yet. Confirmed flows always run to completion.
// @Tags         donations
// @Accept       json
// @Produce      json
// @Param        id path string true "Donation flow ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /donations/{id} [delete]
func (h *DonationHandler) CancelDonation(c *gin.Context) {
	err := h.donationUseCase.Cancel(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrFlowNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Donation flow not found"})
		case errors.Is(err, usecase.ErrCancelDenied):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to cancel donation: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel donation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Donation cancelled"})
}
