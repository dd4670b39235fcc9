package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitortoniolo/webapp-showme/internal/models"
	"github.com/vitortoniolo/webapp-showme/internal/service"
)

type artistCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	ImageURL    *string `json:"image_url"`
}

type artistUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
	ImageURL    *string `json:"image_url"`
}

type artistResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	URL         *string   `json:"url"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toArtistResponse(artist models.Artist) artistResponse {
	return artistResponse{
		ID:          artist.ID,
		Name:        artist.Name,
		Description: artist.Description,
		URL:         artist.URL,
		ImageURL:    artist.ImageURL,
		CreatedAt:   artist.CreatedAt,
		UpdatedAt:   artist.UpdatedAt,
	}
}

func (h HandlerSet) CreateArtist(c *gin.Context) {
	var req artistCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	artist, err := h.catalog.CreateArtist(c.Request.Context(), service.ArtistInput{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toArtistResponse(artist))
}

func (h HandlerSet) ListArtists(c *gin.Context) {
	limit, offset := pagination(c, defaultCatalogPageSize)

	artists, err := h.catalog.ListArtists(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]artistResponse, 0, len(artists))
	for _, artist := range artists {
		out = append(out, toArtistResponse(artist))
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) GetArtist(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	artist, err := h.catalog.GetArtist(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toArtistResponse(artist))
}

func (h HandlerSet) UpdateArtist(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req artistUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	artist, err := h.catalog.UpdateArtist(c.Request.Context(), id, models.ArtistPatch{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toArtistResponse(artist))
}

func (h HandlerSet) DeleteArtist(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteArtist(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
