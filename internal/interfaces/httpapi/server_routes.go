package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/gameweeks/current", handler.GetCurrentGameweek)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/price-changes", handler.ListPriceChanges)
	mux.HandleFunc("GET /v1/entries/{entryID}/squad", handler.GetSquadAnalysis)
	mux.HandleFunc("GET /v1/entries/{entryID}/transfers", handler.GetTransferAdvice)
	mux.HandleFunc("POST /v1/squads/plan", handler.PlanSquad)
	mux.HandleFunc("GET /v1/dashboard", handler.GetDashboard)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/refresh-data", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RefreshGameData)))
}
