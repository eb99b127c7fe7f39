package roster

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/httpapi"
)

// Service exposes roster reads over HTTP.
type Service struct {
	app *App
}

func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts roster routes on the router.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/fantasy-teams/{fantasyTeamID}/roster", s.handleGetRoster)
}

func (s *Service) handleGetRoster(w http.ResponseWriter, r *http.Request) {
	fantasyTeamID, err := uuid.Parse(chi.URLParam(r, "fantasyTeamID"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid fantasy team id")
		return
	}

	spots, err := s.app.GetSpotsByFantasyTeam(r.Context(), fantasyTeamID)
	if err != nil {
		httpapi.WriteError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"roster": spots})
}
