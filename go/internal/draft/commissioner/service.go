package commissioner

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fastbreakhq/fastbreak/go/internal/draft/pick"
	"github.com/fastbreakhq/fastbreak/go/internal/httpapi"
	"github.com/fastbreakhq/fastbreak/go/internal/league"
)

// Service exposes commissioner draft controls over HTTP.
type Service struct {
	app *App
}

func NewService(app *App) *Service {
	return &Service{app: app}
}

// RegisterRoutes mounts commissioner routes on the router.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Route("/leagues/{leagueID}/draft", func(r chi.Router) {
		r.Post("/pause", s.handlePause)
		r.Post("/resume", s.handleResume)
		r.Put("/time-per-pick", s.handleUpdateTimePerPick)
		r.Post("/extend", s.handleExtend)
		r.Post("/skip", s.handleSkip)
		r.Post("/reverse", s.handleReverse)
		r.Get("/clock", s.handleClock)
	})
}

func (s *Service) handlePause(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := parseLeagueID(w, r)
	if !ok {
		return
	}
	if err := s.app.PauseDraft(r.Context(), leagueID); err != nil {
		writeAppError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Service) handleResume(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := parseLeagueID(w, r)
	if !ok {
		return
	}
	if err := s.app.ResumeDraft(r.Context(), leagueID); err != nil {
		writeAppError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Service) handleUpdateTimePerPick(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := parseLeagueID(w, r)
	if !ok {
		return
	}
	var body struct {
		Seconds int `json:"seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid request body")
		return
	}
	if err := s.app.UpdateTimePerPick(r.Context(), leagueID, body.Seconds); err != nil {
		writeAppError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "time_per_pick_sec": body.Seconds})
}

func (s *Service) handleExtend(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := parseLeagueID(w, r)
	if !ok {
		return
	}
	var body struct {
		AdditionalSeconds int `json:"additional_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid request body")
		return
	}
	newExpiry, err := s.app.ExtendPickTimer(r.Context(), leagueID, body.AdditionalSeconds)
	if err != nil {
		writeAppError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "time_expires": newExpiry})
}

func (s *Service) handleSkip(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := parseLeagueID(w, r)
	if !ok {
		return
	}
	if err := s.app.SkipCurrentPick(r.Context(), leagueID); err != nil {
		writeAppError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Service) handleReverse(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := parseLeagueID(w, r)
	if !ok {
		return
	}
	var body struct {
		RequestedBy uuid.UUID `json:"requested_by"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid request body")
		return
	}
	reversed, err := s.app.ReversePick(r.Context(), leagueID, body.RequestedBy)
	if err != nil {
		writeAppError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "reversed_pick": reversed})
}

func (s *Service) handleClock(w http.ResponseWriter, r *http.Request) {
	leagueID, ok := parseLeagueID(w, r)
	if !ok {
		return
	}
	snap, err := s.app.ClockSnapshot(r.Context(), leagueID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, snap)
}

func parseLeagueID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	leagueID, err := uuid.Parse(chi.URLParam(r, "leagueID"))
	if err != nil {
		httpapi.WriteError(w, http.StatusBadRequest, "invalid_argument", "invalid league id")
		return uuid.Nil, false
	}
	return leagueID, true
}

func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, league.ErrLeagueNotFound):
		httpapi.WriteError(w, http.StatusNotFound, "league_not_found", err.Error())
	case errors.Is(err, pick.ErrNoActivePick):
		httpapi.WriteError(w, http.StatusConflict, "no_active_pick", err.Error())
	case errors.Is(err, pick.ErrNoPickToReverse):
		httpapi.WriteError(w, http.StatusConflict, "no_pick_to_reverse", err.Error())
	case errors.Is(err, ErrNotAuthorized):
		httpapi.WriteError(w, http.StatusForbidden, "not_authorized", err.Error())
	case errors.Is(err, ErrExtensionsNotAllowed):
		httpapi.WriteError(w, http.StatusForbidden, "extensions_not_allowed", err.Error())
	case strings.HasPrefix(err.Error(), "validation failed"):
		httpapi.WriteError(w, http.StatusBadRequest, "validation", err.Error())
	default:
		httpapi.WriteError(w, http.StatusInternalServerError, "internal", err.Error())
	}
}
