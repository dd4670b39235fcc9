package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitortoniolo/webapp-showme/internal/middleware"
	"github.com/vitortoniolo/webapp-showme/internal/models"
	"github.com/vitortoniolo/webapp-showme/internal/service"
)

type establishmentCreateRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"image_url"`
	City         *string `json:"city"`
	Neighborhood *string `json:"neighborhood"`
	Street       *string `json:"street"`
	Number       *string `json:"number"`
	Capacity     *int    `json:"capacity"`
}

type establishmentUpdateRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	ImageURL     *string `json:"image_url"`
	City         *string `json:"city"`
	Neighborhood *string `json:"neighborhood"`
	Street       *string `json:"street"`
	Number       *string `json:"number"`
	Capacity     *int    `json:"capacity"`
}

type establishmentResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	ImageURL     *string   `json:"image_url"`
	City         *string   `json:"city"`
	Neighborhood *string   `json:"neighborhood"`
	Street       *string   `json:"street"`
	Number       *string   `json:"number"`
	Capacity     *int      `json:"capacity"`
	OwnerID      *int64    `json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toEstablishmentResponse(est models.Establishment) establishmentResponse {
	return establishmentResponse{
		ID:           est.ID,
		Name:         est.Name,
		Description:  est.Description,
		ImageURL:     est.ImageURL,
		City:         est.City,
		Neighborhood: est.Neighborhood,
		Street:       est.Street,
		Number:       est.Number,
		Capacity:     est.Capacity,
		OwnerID:      est.OwnerID,
		CreatedAt:    est.CreatedAt,
		UpdatedAt:    est.UpdatedAt,
	}
}

func toEstablishmentResponses(ests []models.Establishment) []establishmentResponse {
	out := make([]establishmentResponse, 0, len(ests))
	for _, est := range ests {
		out = append(out, toEstablishmentResponse(est))
	}
	return out
}

func (h HandlerSet) CreateEstablishment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req establishmentCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	est, err := h.catalog.CreateEstablishment(c.Request.Context(), user, service.EstablishmentInput{
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		City:         req.City,
		Neighborhood: req.Neighborhood,
		Street:       req.Street,
		Number:       req.Number,
		Capacity:     req.Capacity,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toEstablishmentResponse(est))
}

func (h HandlerSet) ListEstablishments(c *gin.Context) {
	limit, offset := pagination(c, defaultEventPageSize)

	ests, err := h.catalog.ListEstablishments(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toEstablishmentResponses(ests))
}

func (h HandlerSet) GetEstablishment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	est, err := h.catalog.GetEstablishment(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toEstablishmentResponse(est))
}

func (h HandlerSet) UpdateEstablishment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req establishmentUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	est, err := h.catalog.UpdateEstablishment(c.Request.Context(), user, id, models.EstablishmentPatch{
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		City:         req.City,
		Neighborhood: req.Neighborhood,
		Street:       req.Street,
		Number:       req.Number,
		Capacity:     req.Capacity,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toEstablishmentResponse(est))
}

func (h HandlerSet) DeleteEstablishment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteEstablishment(c.Request.Context(), user, id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h HandlerSet) MyEstablishments(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, offset := pagination(c, defaultEventPageSize)

	ests, err := h.catalog.ListMyEstablishments(c.Request.Context(), user, limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toEstablishmentResponses(ests))
}
