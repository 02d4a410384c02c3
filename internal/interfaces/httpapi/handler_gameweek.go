package httpapi

import "net/http"

func (h *Handler) GetCurrentGameweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentGameweek")
	defer span.End()

	gameweek, err := h.dataService.CurrentGameweek(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get current gameweek failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameweekToDTO(ctx, gameweek))
}
