package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitortoniolo/webapp-showme/internal/models"
)

func ptr(v int64) *int64 { return &v }

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestPolicyMembership(t *testing.T) {
	p := NewPolicy([]string{"Admin@Example.com"}, []string{"editor@example.com"})

	admin := models.User{ID: 1, Email: "admin@example.com"}
	editor := models.User{ID: 2, Email: "EDITOR@example.com"}
	regular := models.User{ID: 3, Email: "someone@example.com"}

	assert.True(t, p.IsAdmin(admin))
	assert.False(t, p.IsAdmin(editor))
	assert.False(t, p.IsAdmin(regular))

	assert.True(t, p.HasGlobalAccess(admin))
	assert.True(t, p.HasGlobalAccess(editor))
	assert.False(t, p.HasGlobalAccess(regular))
}

func TestCanMutate(t *testing.T) {
	p := NewPolicy([]string{"admin@example.com"}, nil)

	admin := models.User{ID: 1, Email: "admin@example.com"}
	owner := models.User{ID: 2, Email: "owner@example.com"}
	other := models.User{ID: 3, Email: "other@example.com"}

	t.Run("unclaimed resource is open to everyone", func(t *testing.T) {
		assert.True(t, p.CanMutate(nil, other))
		assert.True(t, p.CanMutate(nil, owner))
	})

	t.Run("owner may mutate", func(t *testing.T) {
		assert.True(t, p.CanMutate(ptr(2), owner))
	})

	t.Run("non-owner may not", func(t *testing.T) {
		assert.False(t, p.CanMutate(ptr(2), other))
	})

	t.Run("global access overrides ownership", func(t *testing.T) {
		assert.True(t, p.CanMutate(ptr(2), admin))
	})
}
