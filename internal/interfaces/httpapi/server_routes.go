package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metricsHandler http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
}

func registerMatrixRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/games/{gameID}/seasons/{season}/matrices", handler.GetGameMatrices)
	mux.HandleFunc("GET /v1/games/{gameID}/seasons/{season}/analysis", handler.GetGameAnalysis)
	mux.HandleFunc("GET /v1/players/{playerID}/seasons/{season}/matrix", handler.GetPlayerSeasonMatrix)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
}
