package lineup

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/httpapi"
	"github.com/fastbreakhq/fastbreak/go/internal/league"
)

// Service exposes lineup operations over HTTP.
type Service struct {
	app *App
}

func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts lineup routes on the router.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Post("/lineups/auto", s.handleGenerate)
	r.Get("/leagues/{leagueID}/fantasy-teams/{fantasyTeamID}/lineup", s.handleGetWeekLineup)
}

func (s *Service) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateLineupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid request body")
		return
	}

	result, err := s.app.GenerateAutoLineup(r.Context(), req)
	if err != nil {
		var validationErr *ValidationError
		switch {
		case errors.As(err, &validationErr):
			httpapi.WriteError(w, http.StatusBadRequest, "validation", err.Error())
		case errors.Is(err, league.ErrSettingsNotFound):
			httpapi.WriteError(w, http.StatusNotFound, "settings_not_found", err.Error())
		default:
			httpapi.WriteError(w, http.StatusInternalServerError, "internal", err.Error())
		}
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, result)
}

func (s *Service) handleGetWeekLineup(w http.ResponseWriter, r *http.Request) {
	leagueID, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid league id")
		return
	}
	fantasyTeamID, err := uuid.Parse(chi.URLParam(r, "fantasyTeamID"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid fantasy team id")
		return
	}
	weekNumber, err := strconv.Atoi(r.URL.Query().Get("week"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid week")
		return
	}
	seasonYear, err := strconv.Atoi(r.URL.Query().Get("season_year"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid season_year")
		return
	}

	assignments, err := s.app.GetWeekLineup(r.Context(), leagueID, fantasyTeamID, weekNumber, seasonYear)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"assignments": assignments})
}
