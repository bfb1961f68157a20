package v1

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/corpora-ai/corpora/app/core"
	"github.com/corpora-ai/corpora/pkg/errors"
	"github.com/corpora-ai/corpora/pkg/i18n"
	"github.com/corpora-ai/corpora/pkg/safe"
	"github.com/corpora-ai/corpora/pkg/types"
	"github.com/corpora-ai/corpora/pkg/utils"
)

// appendEvent records one audit row off the request path. Auditing never
// fails or delays the request it describes; errors are logged and dropped.
func appendEvent(ctx context.Context, core *core.Core, effectiveKey, kind, actor string, payload map[string]any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to encode audit payload", slog.String("kind", kind), slog.Any("error", err))
		return
	}

	event := types.Event{
		ID:           utils.GenUniqIDStr(),
		EffectiveKey: effectiveKey,
		Kind:         kind,
		Actor:        actor,
		Payload:      raw,
	}

	writeCtx := context.WithoutCancel(ctx)
	go safe.Run(func() {
		if err := core.Store().EventStore().Create(writeCtx, event); err != nil {
			slog.Error("failed to append audit event", slog.String("kind", kind), slog.Any("error", err))
		}
	})
}

type EventLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewEventLogic(ctx context.Context, core *core.Core) *EventLogic {
	return &EventLogic{
		ctx:  ctx,
		core: core,
	}
}

func (l *EventLogic) ListEvents(tenantID, playgroundID string, page, pageSize uint64) ([]types.Event, error) {
	effectiveKey, err := resolveEffectiveKey(l.ctx, l.core, tenantID, playgroundID)
	if err != nil {
		return nil, err
	}

	list, err := l.core.Store().EventStore().List(l.ctx, effectiveKey, page, pageSize)
	if err != nil {
		return nil, errors.New("EventLogic.ListEvents.EventStore.List", i18n.ERROR_STORAGE, err)
	}
	return list, nil
}
