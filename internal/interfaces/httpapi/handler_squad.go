package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/SiddigHope/sanfpl/internal/usecase"
	sonic "github.com/bytedance/sonic"
)

type planSquadRequest struct {
	PlayerIDs []int  `json:"playerIds" validate:"required,len=15,dive,gt=0"`
	Formation string `json:"formation"`
}

func (h *Handler) GetSquadAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquadAnalysis")
	defer span.End()

	entryID, err := pathInt(r, "entryID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	formation := strings.TrimSpace(r.URL.Query().Get("formation"))

	analysis, err := h.squadService.Analyze(ctx, entryID, formation)
	if err != nil {
		h.logger.WarnContext(ctx, "analyze squad failed", "entry_id", entryID, "formation", formation, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadAnalysisDTO{
		EntryID:     analysis.EntryID,
		Gameweek:    analysis.Gameweek,
		Formation:   analysis.Formation,
		Starting:    playersToDTO(ctx, analysis.Starting),
		Bench:       playersToDTO(ctx, analysis.Bench),
		Captain:     playerToDTO(ctx, analysis.Captain),
		ViceCaptain: playerToDTO(ctx, analysis.ViceCaptain),
		Rating:      analysis.Rating,
		Bank:        float64(analysis.Bank) / 10.0,
		TeamValue:   float64(analysis.TeamValue) / 10.0,
		TotalPoints: analysis.TotalPoints,
		OverallRank: analysis.OverallRank,
	})
}

func (h *Handler) PlanSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlanSquad")
	defer span.End()

	var req planSquadRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	plan, err := h.squadService.Plan(ctx, req.PlayerIDs, req.Formation)
	if err != nil {
		h.logger.WarnContext(ctx, "plan squad failed", "formation", req.Formation, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadPlanDTO{
		Gameweek:    plan.Gameweek,
		Formation:   plan.Formation,
		Starting:    playersToDTO(ctx, plan.Starting),
		Bench:       playersToDTO(ctx, plan.Bench),
		Captain:     playerToDTO(ctx, plan.Captain),
		ViceCaptain: playerToDTO(ctx, plan.ViceCaptain),
		Rating:      plan.Rating,
	})
}
