package v1

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/corpora-ai/corpora/app/core"
	"github.com/corpora-ai/corpora/pkg/errors"
	"github.com/corpora-ai/corpora/pkg/i18n"
	"github.com/corpora-ai/corpora/pkg/scope"
	"github.com/corpora-ai/corpora/pkg/types"
)

// resolveEffectiveKey validates the tenant/playground pair and derives the
// partition key used everywhere downstream. A supplied but unknown
// playground is a hard not-found; it never falls back to tenant-wide.
func resolveEffectiveKey(ctx context.Context, core *core.Core, tenantID, playgroundID string) (string, error) {
	if err := scope.ValidateID(tenantID); err != nil {
		return "", errors.New("scope.resolveEffectiveKey.ValidateID.tenant", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
	}

	if playgroundID == "" {
		return scope.EffectiveKey(tenantID, ""), nil
	}

	if err := scope.ValidateID(playgroundID); err != nil {
		return "", errors.New("scope.resolveEffectiveKey.ValidateID.playground", i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
	}

	_, err := core.Store().PlaygroundStore().Get(ctx, tenantID, playgroundID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", errors.New("scope.resolveEffectiveKey.PlaygroundStore.Get.nil", i18n.ERROR_SCOPE_NOT_FOUND, err).Code(http.StatusNotFound)
		}
		return "", errors.New("scope.resolveEffectiveKey.PlaygroundStore.Get", i18n.ERROR_INTERNAL, err)
	}

	return scope.EffectiveKey(tenantID, playgroundID), nil
}

// ensureTenant creates the tenant row on first contact.
func ensureTenant(ctx context.Context, core *core.Core, tenantID string) error {
	_, err := core.Store().TenantStore().Get(ctx, tenantID)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return errors.New("scope.ensureTenant.TenantStore.Get", i18n.ERROR_INTERNAL, err)
	}

	if err = core.Store().TenantStore().Create(ctx, types.Tenant{ID: tenantID, Name: tenantID}); err != nil {
		return errors.New("scope.ensureTenant.TenantStore.Create", i18n.ERROR_INTERNAL, err)
	}
	return nil
}
