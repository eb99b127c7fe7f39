package gateway

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fastbreakhq/fastbreak/go/internal/httpapi"
	"github.com/fastbreakhq/fastbreak/go/internal/league"
)

// StateHandler serves draft state over HTTP for clients that missed events or
// are connecting fresh.
type StateHandler struct {
	provider *StateProvider
}

func NewStateHandler(provider *StateProvider) *StateHandler {
	return &StateHandler{provider: provider}
}

// RegisterRoutes mounts the state endpoint on the router.
func (h *StateHandler) RegisterRoutes(r chi.Router) {
	r.Get("/leagues/{leagueID}/draft/state", h.handleLeagueState)
}

func (h *StateHandler) handleLeagueState(w http.ResponseWriter, r *http.Request) {
	leagueID, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_league_id", "league id must be a UUID")
		return
	}

	state, err := h.provider.GetLeagueState(r.Context(), leagueID)
	if err != nil {
		if errors.Is(err, league.ErrLeagueNotFound) {
			httpapi.WriteError(w, http.StatusNotFound, "league_not_found", "league not found")
			return
		}
		log.Error().Err(err).Str("league_id", leagueID.String()).Msg("failed to load draft state")
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", "failed to load draft state")
		return
	}

	httpapi.WriteJSON(w, http.StatusOK, state)
}
