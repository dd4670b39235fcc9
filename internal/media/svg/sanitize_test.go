package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	t.Run("strips script tags", func(t *testing.T) {
		in := []byte(`<svg><script>alert(1)</script><rect width="1"/></svg>`)
		out, err := Sanitize(in)
		require.NoError(t, err)
		assert.NotContains(t, string(out), "script")
		assert.Contains(t, string(out), "<rect")
	})

	t.Run("strips inline event handlers", func(t *testing.T) {
		in := []byte(`<svg onload="evil()"><circle onclick="evil()" r="5"/></svg>`)
		out, err := Sanitize(in)
		require.NoError(t, err)
		assert.NotContains(t, string(out), "onload")
		assert.NotContains(t, string(out), "onclick")
		assert.Contains(t, string(out), "<circle")
	})

	t.Run("rejects non-svg input", func(t *testing.T) {
		_, err := Sanitize([]byte(`<html><body>hi</body></html>`))
		assert.Error(t, err)
	})
}
