package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitortoniolo/webapp-showme/internal/apperror"
)

func newTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	return c, rec
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  *apperror.AppError
		want int
	}{
		{apperror.NotFound("event", 7), http.StatusNotFound},
		{apperror.Forbidden("nope"), http.StatusForbidden},
		{apperror.Unauthorized("nope"), http.StatusUnauthorized},
		{apperror.Conflict("taken"), http.StatusBadRequest},
		{apperror.Validation(), http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), tc.err.Message)
	}
}

func TestRespondError(t *testing.T) {
	t.Run("app error maps to its status", func(t *testing.T) {
		c, rec := newTestContext(t, "GET", "/events/7", "")
		respondError(c, zerolog.Nop(), apperror.NotFound("event", 7))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "event 7 not found", body["error"])
	})

	t.Run("validation error carries field detail", func(t *testing.T) {
		c, rec := newTestContext(t, "POST", "/auth/signup", "")
		respondError(c, zerolog.Nop(), apperror.Validation(
			apperror.FieldError{Field: "email", Message: "required"},
		))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var body struct {
			Detail []apperror.FieldError `json:"detail"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Detail, 1)
		assert.Equal(t, "email", body.Detail[0].Field)
	})

	t.Run("unknown error is a 500 with no detail leaked", func(t *testing.T) {
		c, rec := newTestContext(t, "GET", "/events", "")
		respondError(c, zerolog.Nop(), errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestBindJSON(t *testing.T) {
	type payload struct {
		Email string `json:"email" binding:"required,email"`
		Name  string `json:"name"`
	}

	t.Run("valid body binds", func(t *testing.T) {
		c, _ := newTestContext(t, "POST", "/auth/signup", `{"email":"a@b.co","name":"A"}`)
		var p payload
		require.True(t, bindJSON(c, &p))
		assert.Equal(t, "a@b.co", p.Email)
	})

	t.Run("malformed json echoes the raw body", func(t *testing.T) {
		c, rec := newTestContext(t, "POST", "/auth/signup", `{"email":`)
		var p payload
		require.False(t, bindJSON(c, &p))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, `{"email":`, body["body"])
	})

	t.Run("validation failure names the field", func(t *testing.T) {
		c, rec := newTestContext(t, "POST", "/auth/signup", `{"email":"not-an-email"}`)
		var p payload
		require.False(t, bindJSON(c, &p))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "email")
	})
}

func TestPagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, _ := newTestContext(t, "GET", "/events", "")
		limit, offset := pagination(c, 50)
		assert.Equal(t, 50, limit)
		assert.Equal(t, 0, offset)
	})

	t.Run("explicit values", func(t *testing.T) {
		c, _ := newTestContext(t, "GET", "/events?limit=10&skip=30", "")
		limit, offset := pagination(c, 50)
		assert.Equal(t, 10, limit)
		assert.Equal(t, 30, offset)
	})

	t.Run("garbage values fall back", func(t *testing.T) {
		c, _ := newTestContext(t, "GET", "/events?limit=banana&skip=-5", "")
		limit, offset := pagination(c, 50)
		assert.Equal(t, 50, limit)
		assert.Equal(t, 0, offset)
	})

	t.Run("oversized limit clamps to the cap", func(t *testing.T) {
		c, _ := newTestContext(t, "GET", "/events?limit=99999", "")
		limit, _ := pagination(c, 50)
		assert.Equal(t, maxPageSize, limit)

		c, _ = newTestContext(t, "GET", "/events?limit=200", "")
		limit, _ = pagination(c, 50)
		assert.Equal(t, 200, limit)
	})
}

func TestIDParam(t *testing.T) {
	t.Run("integer id", func(t *testing.T) {
		c, _ := newTestContext(t, "GET", "/events/42", "")
		c.Params = gin.Params{{Key: "id", Value: "42"}}
		id, ok := idParam(c)
		require.True(t, ok)
		assert.Equal(t, int64(42), id)
	})

	t.Run("non-integer id is a validation error", func(t *testing.T) {
		c, rec := newTestContext(t, "GET", "/events/abc", "")
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		_, ok := idParam(c)
		require.False(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
