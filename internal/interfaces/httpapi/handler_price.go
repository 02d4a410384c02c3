package httpapi

import "net/http"

func (h *Handler) ListPriceChanges(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPriceChanges")
	defer span.End()

	includeStable, err := queryBool(r, "includeStable")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	movements, err := h.priceService.Movements(ctx, includeStable, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list price changes failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, priceMovementsToDTO(ctx, movements))
}
