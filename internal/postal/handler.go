package postal

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pinkbella/storefront/internal/platform/httpx"
	"github.com/pinkbella/storefront/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	resolver Resolver
}

func NewHandler(logger *slog.Logger, resolver Resolver) *Handler {
	return &Handler{logger: logger, resolver: resolver}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{code}", h.resolve)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	addr, err := h.resolver.Resolve(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		if errors.Is(err, ErrUnknownPostalCode) {
			httpx.RespondError(w, shared.NotFound("postal code", 0))
			return
		}
		h.logger.Error("resolve postal code", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, addr)
}
