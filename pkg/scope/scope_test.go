package scope

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveKeyTenantOnly(t *testing.T) {
	assert.Equal(t, "acme", EffectiveKey("acme", ""))
}

func TestEffectiveKeyRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"acme", "research"},
		{"t1", "pg-2024_q3"},
		{"Tenant_A", "B"},
		{"acme", ""},
	}
	for _, p := range pairs {
		tenant, playground := Parse(EffectiveKey(p[0], p[1]))
		assert.Equal(t, p[0], tenant)
		assert.Equal(t, p[1], playground)
	}
}

func TestCompositeNeverCollidesWithTenant(t *testing.T) {
	key := EffectiveKey("acme", "lab")
	assert.Error(t, ValidateID(key), "a composite key must never be a valid tenant id")
}

func TestValidateID(t *testing.T) {
	valid := []string{"acme", "t-1", "Tenant_42", "a", strings.Repeat("k", 64)}
	for _, id := range valid {
		assert.NoError(t, ValidateID(id), id)
	}

	invalid := []string{
		"",
		"a::b",
		"a:b",
		"white space",
		"semi;colon",
		"slash/id",
		"é",
		strings.Repeat("k", 65),
	}
	for _, id := range invalid {
		assert.ErrorIs(t, ValidateID(id), ErrInvalidID, "%q", id)
	}
}
