// Package scope derives the effective key that partitions everything in the
// retrieval store. A tenant alone is its own key; a tenant plus playground
// folds into one composite so the store only ever filters on a single value.
package scope

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Separator joins tenant and playground ids into an effective key. Valid ids
// can never contain a colon, so a composite key can neither collide with a
// genuine tenant id nor parse ambiguously.
const Separator = "::"

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

var ErrInvalidID = errors.New("scope: id must match [A-Za-z0-9_-]{1,64}")

// ValidateID enforces the id alphabet at every entry point that accepts a
// tenant or playground id.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}

// EffectiveKey returns the partition key for (tenant, playground). An empty
// playground id yields the tenant id unchanged, which keeps tenant-only
// retrieval working against rows written before playgrounds existed.
func EffectiveKey(tenantID, playgroundID string) string {
	if playgroundID == "" {
		return tenantID
	}
	return tenantID + Separator + playgroundID
}

// Parse inverts EffectiveKey.
func Parse(key string) (tenantID, playgroundID string) {
	parts := strings.SplitN(key, Separator, 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return key, ""
}
