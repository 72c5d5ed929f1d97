package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/safety-lms/internal"
	"github.com/frahmantamala/safety-lms/internal/migration"
	"github.com/frahmantamala/safety-lms/internal/transport"
	"github.com/frahmantamala/safety-lms/pkg/logger"
)

type MigrationHandler struct {
	*transport.BaseHandler
	manager *migration.Manager
}

func NewMigrationHandler(manager *migration.Manager, lg *slog.Logger) *MigrationHandler {
	return &MigrationHandler{
		BaseHandler: transport.NewBaseHandler(lg),
		manager:     manager,
	}
}

func (h *MigrationHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, internal.Ok(h.manager.Config()))
}

func (h *MigrationHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var patch migration.Patch
	if err := h.DecodeJSON(r, &patch); err != nil {
		h.WriteError(w, err)
		return
	}
	cfg := h.manager.UpdateConfig(patch)
	if uc, ok := internal.UserFromContext(r.Context()); ok {
		logger.From(r.Context()).Info("migration config changed by operator", "user_id", uc.UserID)
	}
	h.WriteJSON(w, http.StatusOK, internal.Ok(cfg))
}
