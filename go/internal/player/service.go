package player

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/httpapi"
)

// Service exposes player reads over HTTP.
type Service struct {
	app *App
}

func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts player routes on the router.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Get("/players/{playerID}", s.handleGetPlayer)
	r.Get("/leagues/{leagueID}/players/available", s.handleListAvailable)
}

func (s *Service) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "playerID"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid player id")
		return
	}

	p, err := s.app.GetPlayer(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "player_not_found", err.Error())
			return
		}
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"player": p})
}

func (s *Service) handleListAvailable(w http.ResponseWriter, r *http.Request) {
	leagueID, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid league id")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	players, err := s.app.ListAvailablePlayers(r.Context(), leagueID, limit)
	if err != nil {
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"players": players})
}
