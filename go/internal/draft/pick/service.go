package pick

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/httpapi"
	"github.com/fastbreakhq/fastbreak/go/internal/player"
	"github.com/fastbreakhq/fastbreak/go/internal/roster"
)

// Service exposes pick operations over HTTP.
type Service struct {
	app *App
}

func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts pick routes on the router.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Post("/draft/auto-pick", s.handleAutoPick)
	r.Post("/draft/order/initialize", s.handleInitializeOrder)
	r.Get("/leagues/{leagueID}/draft/picks", s.handleListPicks)
}

func (s *Service) handleAutoPick(w http.ResponseWriter, r *http.Request) {
	var req AutoPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid request body")
		return
	}

	committed, err := s.app.AutoPick(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, player.ErrPlayerNotFound):
			httpapi.WriteError(w, http.StatusNotFound, "player_not_found", err.Error())
		case errors.Is(err, ErrDraftOrderNotFound):
			httpapi.WriteError(w, http.StatusNotFound, "draft_order_not_found", err.Error())
		case errors.Is(err, ErrPickAlreadyMade):
			httpapi.WriteError(w, http.StatusConflict, "pick_already_made", err.Error())
		case errors.Is(err, roster.ErrRosterFull):
			httpapi.WriteError(w, http.StatusConflict, "roster_full", err.Error())
		default:
			status := http.StatusInternalServerError
			errType := "internal"
			if isValidationError(err) {
				status = http.StatusBadRequest
				errType = "validation"
			}
			httpapi.WriteError(w, status, errType, err.Error())
		}
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "pick": committed})
}

func (s *Service) handleInitializeOrder(w http.ResponseWriter, r *http.Request) {
	var req InitializeDraftOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid request body")
		return
	}

	created, err := s.app.InitializeDraftOrder(r.Context(), req)
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "validation", err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusCreated, map[string]any{"entries_created": created})
}

func (s *Service) handleListPicks(w http.ResponseWriter, r *http.Request) {
	leagueID, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid league id")
		return
	}

	picks, err := s.app.ListPicksByLeague(r.Context(), leagueID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"picks": picks})
}

func isValidationError(err error) bool {
	return err != nil && strings.HasPrefix(err.Error(), "validation failed")
}
