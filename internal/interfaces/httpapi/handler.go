package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/pitchcount/internal/platform/logging"
	"github.com/riskibarqy/pitchcount/internal/usecase"
)

const (
	includeNames   = "names"
	includePitches = "pitches"
)

type Handler struct {
	matrixService *usecase.MatrixService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(matrixService *usecase.MatrixService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matrixService: matrixService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

type gameSeasonRequest struct {
	GameID  int64 `validate:"required,gt=0"`
	Season  int   `validate:"required,gte=1876,lte=2200"`
	Include map[string]bool
}

type playerSeasonRequest struct {
	PlayerID int64 `validate:"required,gt=0"`
	Season   int   `validate:"required,gte=1876,lte=2200"`
	Include  map[string]bool
}

type playerRequest struct {
	PlayerID int64 `validate:"required,gt=0"`
}

func (h *Handler) parseGameSeason(ctx context.Context, r *http.Request) (gameSeasonRequest, error) {
	gameID, err := parsePathInt(r, "gameID")
	if err != nil {
		return gameSeasonRequest{}, err
	}
	season, err := parsePathInt(r, "season")
	if err != nil {
		return gameSeasonRequest{}, err
	}

	req := gameSeasonRequest{GameID: gameID, Season: int(season), Include: parseInclude(r)}
	if err := h.validateRequest(ctx, req); err != nil {
		return gameSeasonRequest{}, err
	}
	return req, nil
}

func (h *Handler) parsePlayerSeason(ctx context.Context, r *http.Request) (playerSeasonRequest, error) {
	playerID, err := parsePathInt(r, "playerID")
	if err != nil {
		return playerSeasonRequest{}, err
	}
	season, err := parsePathInt(r, "season")
	if err != nil {
		return playerSeasonRequest{}, err
	}

	req := playerSeasonRequest{PlayerID: playerID, Season: int(season), Include: parseInclude(r)}
	if err := h.validateRequest(ctx, req); err != nil {
		return playerSeasonRequest{}, err
	}
	return req, nil
}

func parsePathInt(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

// parseInclude reads ?include=names,pitches into a set.
func parseInclude(r *http.Request) map[string]bool {
	out := make(map[string]bool, 2)
	for _, raw := range r.URL.Query()["include"] {
		for _, item := range strings.Split(raw, ",") {
			item = strings.ToLower(strings.TrimSpace(item))
			if item != "" {
				out[item] = true
			}
		}
	}
	return out
}
