package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SiddigHope/sanfpl/internal/usecase"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	dataService      *usecase.DataService
	playerService    *usecase.PlayerService
	priceService     *usecase.PriceService
	squadService     *usecase.SquadService
	transferService  *usecase.TransferService
	dashboardService *usecase.DashboardService
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	dataService *usecase.DataService,
	playerService *usecase.PlayerService,
	priceService *usecase.PriceService,
	squadService *usecase.SquadService,
	transferService *usecase.TransferService,
	dashboardService *usecase.DashboardService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		dataService:      dataService,
		playerService:    playerService,
		priceService:     priceService,
		squadService:     squadService,
		transferService:  transferService,
		dashboardService: dashboardService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// RefreshGameData drops the cached bootstrap payload and reloads it so
// the next reads see fresh upstream data. Guarded by the internal job
// token.
func (h *Handler) RefreshGameData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshGameData")
	defer span.End()

	h.dataService.Invalidate(ctx)
	if _, err := h.dataService.GameData(ctx); err != nil {
		h.logger.ErrorContext(ctx, "refresh game data failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "refreshed"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func pathInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(key))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, key, raw)
	}
	return value, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, key, raw)
	}
	return value, nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean, got %q", usecase.ErrInvalidInput, key, raw)
	}
	return value, nil
}
