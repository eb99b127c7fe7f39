package fantasyteam

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/httpapi"
)

// Service exposes fantasy team operations over HTTP.
type Service struct {
	app *App
}

func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts fantasy team routes on the router.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/fantasy-teams/{fantasyTeamID}", s.handleGetTeam)
	r.Get("/leagues/{leagueID}/fantasy-teams", s.handleListTeams)
	r.Post("/fantasy-teams/{fantasyTeamID}/autodraft/enable", s.handleEnableAutodraft)
	r.Post("/fantasy-teams/{fantasyTeamID}/autodraft/disable", s.handleDisableAutodraft)
}

func (s *Service) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "fantasyTeamID"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid fantasy team id")
		return
	}

	team, err := s.app.GetFantasyTeam(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrFantasyTeamNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"fantasy_team": team})
}

func (s *Service) handleListTeams(w http.ResponseWriter, r *http.Request) {
	leagueID, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid league id")
		return
	}

	teams, err := s.app.ListTeamsByLeague(r.Context(), leagueID)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"fantasy_teams": teams})
}

func (s *Service) handleEnableAutodraft(w http.ResponseWriter, r *http.Request) {
	s.setAutodraft(w, r, true)
}

func (s *Service) handleDisableAutodraft(w http.ResponseWriter, r *http.Request) {
	s.setAutodraft(w, r, false)
}

func (s *Service) setAutodraft(w http.ResponseWriter, r *http.Request, enabled bool) {
	id, err := uuid.Parse(chi.URLParam(r, "fantasyTeamID"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid fantasy team id")
		return
	}

	if enabled {
		err = s.app.EnableAutodraft(r.Context(), id)
	} else {
		err = s.app.DisableAutodraft(r.Context(), id)
	}
	if err != nil {
		if errors.Is(err, ErrFantasyTeamNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}
