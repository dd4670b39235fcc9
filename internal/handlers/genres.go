package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitortoniolo/webapp-showme/internal/models"
)

type genreCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

type genreUpdateRequest struct {
	Name *string `json:"name"`
}

type genreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (h HandlerSet) CreateGenre(c *gin.Context) {
	var req genreCreateRequest
	if !bindJSON(c, &req) {
		return
	}

	genre, err := h.catalog.CreateGenre(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, genreResponse{ID: genre.ID, Name: genre.Name})
}

func (h HandlerSet) ListGenres(c *gin.Context) {
	limit, offset := pagination(c, defaultCatalogPageSize)

	genres, err := h.catalog.ListGenres(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]genreResponse, 0, len(genres))
	for _, genre := range genres {
		out = append(out, genreResponse{ID: genre.ID, Name: genre.Name})
	}
	c.JSON(http.StatusOK, out)
}

func (h HandlerSet) GetGenre(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	genre, err := h.catalog.GetGenre(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, genreResponse{ID: genre.ID, Name: genre.Name})
}

func (h HandlerSet) UpdateGenre(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req genreUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	genre, err := h.catalog.UpdateGenre(c.Request.Context(), id, models.GenrePatch{Name: req.Name})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, genreResponse{ID: genre.ID, Name: genre.Name})
}

func (h HandlerSet) DeleteGenre(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.catalog.DeleteGenre(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
