package httpapi

import "net/http"

func (h *Handler) GetTransferAdvice(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTransferAdvice")
	defer span.End()

	entryID, err := pathInt(r, "entryID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	advice, err := h.transferService.Recommend(ctx, entryID)
	if err != nil {
		h.logger.WarnContext(ctx, "recommend transfers failed", "entry_id", entryID, "error", err)
		writeError(ctx, w, err)
		return
	}

	transfers := make([]transferDTO, 0, len(advice.Transfers))
	for _, transfer := range advice.Transfers {
		transfers = append(transfers, transferDTO{
			Sell:   playerToDTO(ctx, transfer.Sell),
			Buy:    playerToDTO(ctx, transfer.Buy),
			Reason: transfer.Reason,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, transferAdviceDTO{
		EntryID:   advice.EntryID,
		Gameweek:  advice.Gameweek,
		Bank:      float64(advice.Bank) / 10.0,
		Transfers: transfers,
	})
}
