package httpapi

import (
	"net/http"
	"strings"

	"github.com/SiddigHope/sanfpl/internal/usecase"
)

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	teamID, err := queryInt(r, "team")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.ListPlayersInput{
		Position: strings.TrimSpace(r.URL.Query().Get("position")),
		TeamID:   teamID,
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		SortBy:   strings.TrimSpace(r.URL.Query().Get("sort")),
		Limit:    limit,
	}

	players, err := h.playerService.ListPlayers(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "position", input.Position, "sort", input.SortBy, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(ctx, players))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID, err := pathInt(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.playerService.GetPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerDetailDTO{
		Player:     playerToDTO(ctx, detail.Player),
		ValueScore: detail.ValueScore,
		History:    playerHistoryToDTO(ctx, detail.History),
	})
}
