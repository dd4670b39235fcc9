package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/vitortoniolo/webapp-showme/internal/apperror"
)

const maxPageSize = 200

func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		body := gin.H{"error": appErr.Message}
		if len(appErr.Fields) > 0 {
			body["detail"] = appErr.Fields
		}
		c.JSON(statusFor(appErr), body)
		return
	}

	log.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_server_error"})
}

func statusFor(err *apperror.AppError) int {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// bindJSON decodes and validates the request body. Failures answer 422
// with per-field detail and the offending raw body.
func bindJSON(c *gin.Context, dst any) bool {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_body"})
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		respondValidation(c, raw, []apperror.FieldError{
			{Field: "body", Message: err.Error()},
		})
		return false
	}

	if err := binding.Validator.ValidateStruct(dst); err != nil {
		respondValidation(c, raw, fieldErrors(err))
		return false
	}

	return true
}

func respondValidation(c *gin.Context, raw []byte, fields []apperror.FieldError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"error":  "validation failed",
		"detail": fields,
		"body":   string(raw),
	})
}

func fieldErrors(err error) []apperror.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, apperror.FieldError{
				Field:   strings.ToLower(fe.Field()),
				Message: fmt.Sprintf("failed on the %q rule", fe.Tag()),
			})
		}
		return out
	}
	return []apperror.FieldError{{Field: "body", Message: err.Error()}}
}

// pagination reads skip/limit query parameters with per-resource
// defaults; limit is capped.
func pagination(c *gin.Context, defaultLimit int) (limit, offset int) {
	limit = defaultLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
			if limit > maxPageSize {
				limit = maxPageSize
			}
		}
	}
	if v := c.Query("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return limit, offset
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondValidation(c, nil, []apperror.FieldError{
			{Field: "id", Message: "id must be an integer"},
		})
		return 0, false
	}
	return id, true
}
