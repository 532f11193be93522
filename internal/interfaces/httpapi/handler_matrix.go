package httpapi

import (
	"net/http"

	"github.com/riskibarqy/pitchcount/internal/usecase"
)

func (h *Handler) GetGameMatrices(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameMatrices")
	defer span.End()

	req, err := h.parseGameSeason(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	analysis, err := h.matrixService.Analyze(ctx, req.GameID, req.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "compute matrices failed", "game_id", req.GameID, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	names := h.resolveNames(r, analysis, req.Include[includeNames])
	items := make([]playerMatrixDTO, 0, len(analysis.Players))
	for _, playerID := range sortedPlayerIDs(analysis.Players) {
		items = append(items, playerMatrixToDTO(analysis.Players[playerID], names[playerID]))
	}

	writeSuccess(ctx, w, http.StatusOK, gameMatricesDTO{
		GameID:   analysis.GameID,
		Season:   analysis.Season,
		States:   stateLabels(h.matrixService.StateSpace().States()),
		Matrices: items,
	})
}

func (h *Handler) GetGameAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameAnalysis")
	defer span.End()

	req, err := h.parseGameSeason(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	analysis, err := h.matrixService.Analyze(ctx, req.GameID, req.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "analyze game failed", "game_id", req.GameID, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	names := h.resolveNames(r, analysis, req.Include[includeNames])
	writeSuccess(ctx, w, http.StatusOK, analysisToDTO(analysis, names, req.Include[includePitches]))
}

func (h *Handler) GetPlayerSeasonMatrix(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerSeasonMatrix")
	defer span.End()

	req, err := h.parsePlayerSeason(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.matrixService.ComputePlayerMatrix(ctx, req.PlayerID, req.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "compute player matrix failed", "player_id", req.PlayerID, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	name := ""
	if req.Include[includeNames] {
		if person, err := h.matrixService.FetchPerson(ctx, req.PlayerID); err == nil {
			name = person.FullName
		}
	}

	item := playerMatrixToDTO(result, name)
	if req.Include[includePitches] {
		item.Pitches = pitchesToDTO(result.Pitches)
	}
	writeSuccess(ctx, w, http.StatusOK, item)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID, err := parsePathInt(r, "playerID")
	if err == nil {
		err = h.validateRequest(ctx, playerRequest{PlayerID: playerID})
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	person, err := h.matrixService.FetchPerson(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerDTO{ID: person.ID, FullName: person.FullName})
}

// resolveNames never fails the request; missing names are rendered empty.
func (h *Handler) resolveNames(r *http.Request, analysis usecase.Analysis, enabled bool) map[int64]string {
	if !enabled || len(analysis.Players) == 0 {
		return map[int64]string{}
	}
	ctx := r.Context()
	names, err := h.matrixService.ResolvePlayerNames(ctx, sortedPlayerIDs(analysis.Players))
	if err != nil {
		h.logger.WarnContext(ctx, "resolve player names failed", "game_id", analysis.GameID, "error", err)
		return map[int64]string{}
	}
	return names
}
