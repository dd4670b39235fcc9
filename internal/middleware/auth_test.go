package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, target string, header map[string]string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	for k, v := range header {
		c.Request.Header.Set(k, v)
	}
	return c
}

func TestExtractToken(t *testing.T) {
	t.Run("bearer header wins", func(t *testing.T) {
		c := testContext(t, "/events?token=fromquery", map[string]string{
			"Authorization":   "Bearer abc123",
			"X-Session-Token": "fromheader",
		})
		assert.Equal(t, "abc123", ExtractToken(c))
	})

	t.Run("session header beats query", func(t *testing.T) {
		c := testContext(t, "/events?token=fromquery", map[string]string{
			"X-Session-Token": "fromheader",
		})
		assert.Equal(t, "fromheader", ExtractToken(c))
	})

	t.Run("query parameter as last resort", func(t *testing.T) {
		c := testContext(t, "/events?token=fromquery", nil)
		assert.Equal(t, "fromquery", ExtractToken(c))
	})

	t.Run("empty bearer falls through", func(t *testing.T) {
		c := testContext(t, "/events", map[string]string{
			"Authorization":   "Bearer ",
			"X-Session-Token": "fromheader",
		})
		assert.Equal(t, "fromheader", ExtractToken(c))
	})

	t.Run("non-bearer authorization is ignored", func(t *testing.T) {
		c := testContext(t, "/events", map[string]string{
			"Authorization": "Basic dXNlcjpwYXNz",
		})
		assert.Equal(t, "", ExtractToken(c))
	})

	t.Run("nothing set", func(t *testing.T) {
		c := testContext(t, "/events", nil)
		assert.Equal(t, "", ExtractToken(c))
	})
}
