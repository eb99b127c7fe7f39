package league

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/httpapi"
)

// Service exposes league reads over HTTP
type Service struct {
	app *App
}

func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts the league endpoints on the router.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/leagues/{leagueID}", s.handleGetLeague)
	r.Get("/leagues/{leagueID}/settings", s.handleGetSeasonSettings)
}

func (s *Service) handleGetLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_league_id", "league id must be a UUID")
		return
	}

	lg, err := s.app.GetLeague(r.Context(), leagueID)
	if err != nil {
		if errors.Is(err, ErrLeagueNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "league_not_found", "league not found")
			return
		}
		log.Printf("Failed to get league %s: %v", leagueID, err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to get league")
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, lg)
}

func (s *Service) handleGetSeasonSettings(w http.ResponseWriter, r *http.Request) {
	leagueID, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_league_id", "league id must be a UUID")
		return
	}

	seasonYear, err := strconv.Atoi(r.URL.Query().Get("season_year"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_season_year", "season_year query parameter is required")
		return
	}

	settings, err := s.app.GetSeasonSettings(r.Context(), leagueID, seasonYear)
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "settings_not_found", "no settings for that league season")
			return
		}
		log.Printf("Failed to get season settings for league %s: %v", leagueID, err)
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to get season settings")
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, settings)
}
