package httpapi

import (
	"net/http"
	"time"
)

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	dashboard, err := h.dashboardService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	topValue := make([]valuePickDTO, 0, len(dashboard.TopValue))
	for _, pick := range dashboard.TopValue {
		topValue = append(topValue, valuePickDTO{
			Player: playerToDTO(ctx, pick.Player),
			Value:  pick.Value,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardDTO{
		Gameweek:     dashboard.Gameweek,
		GameweekName: dashboard.GameweekName,
		Deadline:     dashboard.Deadline.UTC().Format(time.RFC3339),
		TopCaptains:  playersToDTO(ctx, dashboard.TopCaptains),
		TopValue:     topValue,
		PriceRisers:  priceMovementsToDTO(ctx, dashboard.PriceRisers),
	})
}
