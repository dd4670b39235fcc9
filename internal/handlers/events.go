package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitortoniolo/webapp-showme/internal/middleware"
	"github.com/vitortoniolo/webapp-showme/internal/models"
	"github.com/vitortoniolo/webapp-showme/internal/service"
)

type eventCreateRequest struct {
	Title             string     `json:"title" binding:"required"`
	Description       *string    `json:"description"`
	Date              *time.Time `json:"date"`
	Price             *float64   `json:"price"`
	IsFree            bool       `json:"is_free"`
	Capacity          *int       `json:"capacity"`
	URL               *string    `json:"url"`
	EstablishmentID   *int64     `json:"establishment_id"`
	EstablishmentName *string    `json:"establishment_name"`
	City              *string    `json:"city"`
	Neighborhood      *string    `json:"neighborhood"`
	Street            *string    `json:"street"`
	Number            *string    `json:"number"`
	GenreIDs          []int64    `json:"genre_ids"`
	ArtistIDs         []int64    `json:"artist_ids"`
}

type eventUpdateRequest struct {
	Title             *string    `json:"title"`
	Description       *string    `json:"description"`
	Date              *time.Time `json:"date"`
	Price             *float64   `json:"price"`
	IsFree            *bool      `json:"is_free"`
	Capacity          *int       `json:"capacity"`
	URL               *string    `json:"url"`
	EstablishmentID   *int64     `json:"establishment_id"`
	EstablishmentName *string    `json:"establishment_name"`
	City              *string    `json:"city"`
	Neighborhood      *string    `json:"neighborhood"`
	Street            *string    `json:"street"`
	Number            *string    `json:"number"`
	GenreIDs          *[]int64   `json:"genre_ids"`
	ArtistIDs         *[]int64   `json:"artist_ids"`
}

func (h HandlerSet) CreateEvent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req eventCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.catalog.CreateEvent(c.Request.Context(), user, service.EventInput{
		Title:             req.Title,
		Description:       req.Description,
		Date:              req.Date,
		Price:             req.Price,
		IsFree:            req.IsFree,
		Capacity:          req.Capacity,
		URL:               req.URL,
		EstablishmentID:   req.EstablishmentID,
		EstablishmentName: req.EstablishmentName,
		City:              req.City,
		Neighborhood:      req.Neighborhood,
		Street:            req.Street,
		Number:            req.Number,
		GenreIDs:          req.GenreIDs,
		ArtistIDs:         req.ArtistIDs,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

func (h HandlerSet) ListEvents(c *gin.Context) {
	limit, offset := pagination(c, defaultEventPageSize)

	views, err := h.catalog.ListEvents(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h HandlerSet) GetEvent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	view, err := h.catalog.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h HandlerSet) UpdateEvent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req eventUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.catalog.UpdateEvent(c.Request.Context(), user, id, models.EventPatch{
		Title:             req.Title,
		Description:       req.Description,
		Date:              req.Date,
		Price:             req.Price,
		IsFree:            req.IsFree,
		Capacity:          req.Capacity,
		URL:               req.URL,
		EstablishmentID:   req.EstablishmentID,
		EstablishmentName: req.EstablishmentName,
		City:              req.City,
		Neighborhood:      req.Neighborhood,
		Street:            req.Street,
		Number:            req.Number,
		GenreIDs:          req.GenreIDs,
		ArtistIDs:         req.ArtistIDs,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h HandlerSet) DeleteEvent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteEvent(c.Request.Context(), user, id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h HandlerSet) MyEvents(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, offset := pagination(c, defaultEventPageSize)

	views, err := h.catalog.ListMyEvents(c.Request.Context(), user, limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, views)
}
