// Package network - api.go
// REST API for the game client: session state, player actions and saves.
package network

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/abstogo/SpaceTycoon/internal/domain/crew"
	"github.com/abstogo/SpaceTycoon/internal/engine"
	"github.com/abstogo/SpaceTycoon/internal/events"
	"github.com/abstogo/SpaceTycoon/internal/infra/storage"
	"github.com/abstogo/SpaceTycoon/internal/platform/logger"
	"github.com/abstogo/SpaceTycoon/internal/platform/metrics"
	"github.com/abstogo/SpaceTycoon/internal/savegame"
)

// ErrSavesDisabled is returned when the API runs without a game store.
var ErrSavesDisabled = errors.New("saving is not configured")

// API handles HTTP requests against one session runner.
type API struct {
	runner  *engine.Runner
	store   *storage.GameStore
	recon   *storage.Reconstructor
	metrics *metrics.Collector
	logger  *logger.Logger
}

// NewAPI creates the handler set. store and recon may be nil.
func NewAPI(runner *engine.Runner, store *storage.GameStore, recon *storage.Reconstructor, m *metrics.Collector, log *logger.Logger) *API {
	if m == nil {
		m = metrics.New()
	}
	return &API{runner: runner, store: store, recon: recon, metrics: m, logger: log}
}

// ActionResponse is returned by every mutating endpoint.
type ActionResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Outcome *engine.Outcome `json:"outcome,omitempty"`
	State   engine.Status   `json:"state"`
}

// updateRequest advances the clock by a wall-clock delta.
type updateRequest struct {
	DeltaMS int64 `json:"delta_ms"`
}

// RegisterRoutes sets up the game API routes.
func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/game/state", a.HandleState)
	mux.HandleFunc("/api/game/action", a.HandleAction)
	mux.HandleFunc("/api/game/update", a.HandleUpdate)
	mux.HandleFunc("/api/game/save", a.HandleSave)
	mux.HandleFunc("/api/game/load", a.HandleLoad)
	mux.HandleFunc("/api/game/saves", a.HandleSaves)
	mux.HandleFunc("/api/events/resolve", a.command(CmdResolve))
	mux.HandleFunc("/api/ship/maintenance", a.command(CmdMaintain))
	mux.HandleFunc("/api/ship/refuel", a.command(CmdRefuel))
	mux.HandleFunc("/api/crew", a.HandleCrew)
	mux.HandleFunc("/api/crew/train", a.command(CmdTrain))
	mux.HandleFunc("/api/crew/hire", a.command(CmdHire))
	mux.HandleFunc("/api/crew/rest", a.command(CmdRest))
	mux.HandleFunc("/api/trade/buy", a.command(CmdBuy))
	mux.HandleFunc("/api/trade/sell", a.command(CmdSell))
	mux.HandleFunc("/api/journal", a.HandleJournal)
	mux.HandleFunc("/api/journal/recap", a.HandleRecap)
	mux.HandleFunc("/api/journal/stats", a.HandleStats)
}

// HandleState returns the session status.
// GET /api/game/state
func (a *API) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.jsonSuccess(w, a.runner.Status())
}

// CrewResponse lists crew members, optionally for one role.
type CrewResponse struct {
	Role    string        `json:"role,omitempty"`
	Members []crew.Member `json:"members"`
	Summary crew.Summary  `json:"summary"`
}

// HandleCrew returns the roster.
// GET /api/crew?role=Engineer
func (a *API) HandleCrew(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	role := r.URL.Query().Get("role")
	var resp CrewResponse
	a.runner.View(func(s *engine.GameSession) {
		resp.Summary = s.Crew().Summary()
		if role == "" {
			resp.Members = s.Crew().Members()
			return
		}
		resp.Role = role
		resp.Members = s.Crew().ByRole(role)
	})
	if resp.Members == nil {
		resp.Members = []crew.Member{}
	}
	a.jsonSuccess(w, resp)
}

// HandleAction runs a generic command.
// POST /api/game/action {"type":"TRIGGER","payload":{"event_type":"trade_opportunity"}}
func (a *API) HandleAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil || cmd.Type == "" {
		a.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	a.respond(w, cmd, Dispatch(a.runner, cmd))
}

// command builds a handler whose request body is the command payload.
func (a *API) command(cmdType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
		if err != nil {
			a.jsonError(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		cmd := Command{Type: cmdType, Payload: body}
		a.respond(w, cmd, Dispatch(a.runner, cmd))
	}
}

// HandleUpdate advances the simulation clock.
// POST /api/game/update {"delta_ms":1000}
func (a *API) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DeltaMS < 0 {
		a.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	days := a.runner.Tick(time.Duration(req.DeltaMS) * time.Millisecond)
	a.jsonSuccess(w, map[string]interface{}{
		"days":  days,
		"state": a.runner.Status(),
	})
}

// HandleSave stores the session.
// POST /api/game/save
func (a *API) HandleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := a.Save(r.Context()); err != nil {
		a.logger.Err(err, "save failed")
		a.jsonError(w, "Failed to save game", http.StatusInternalServerError)
		return
	}
	a.jsonSuccess(w, ActionResponse{Success: true, Message: "Game saved.", State: a.runner.Status()})
}

// HandleLoad restores the session from its save.
// GET /api/game/load
func (a *API) HandleLoad(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	res, err := a.Load(r.Context())
	if err != nil {
		a.logger.Err(err, "load failed")
		if errors.Is(err, savegame.ErrInvalidSnapshot) {
			a.jsonError(w, "Saved game is corrupt", http.StatusUnprocessableEntity)
			return
		}
		a.jsonError(w, "Failed to load game", http.StatusInternalServerError)
		return
	}
	a.jsonSuccess(w, ActionResponse{Success: res.OK, Message: res.Message, State: a.runner.Status()})
}

// HandleSaves lists stored games.
// GET /api/game/saves
func (a *API) HandleSaves(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		a.jsonError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if a.store == nil {
		a.jsonError(w, ErrSavesDisabled.Error(), http.StatusServiceUnavailable)
		return
	}

	saves, err := a.store.List(r.Context())
	if err != nil {
		a.logger.Err(err, "list saves failed")
		a.jsonError(w, "Failed to list saves", http.StatusInternalServerError)
		return
	}
	if saves == nil {
		saves = []storage.SaveRecord{}
	}
	a.jsonSuccess(w, map[string]interface{}{"saves": saves})
}

// Save snapshots the session and writes it to the store.
func (a *API) Save(ctx context.Context) error {
	if a.store == nil {
		return ErrSavesDisabled
	}

	var snap *savegame.Snapshot
	var id string
	a.runner.View(func(s *engine.GameSession) {
		snap = s.Snapshot()
		id = s.ID()
	})

	err := a.store.Save(ctx, id, snap)
	a.metrics.RecordSave(err)
	if err != nil {
		return err
	}

	a.runner.View(func(s *engine.GameSession) {
		if _, err := s.Journal().Record(events.EventTypeGameSaved, events.ActorSystem, s.Date(), "Game saved.", nil); err != nil {
			a.logger.Err(err, "journal write failed")
		}
	})
	return nil
}

// Load restores the session from the store. A missing save is reported as
// a failed result, not an error.
func (a *API) Load(ctx context.Context) (engine.Result, error) {
	if a.store == nil {
		return engine.Result{}, ErrSavesDisabled
	}

	var id string
	a.runner.View(func(s *engine.GameSession) { id = s.ID() })

	snap, err := a.store.Load(ctx, id)
	if errors.Is(err, storage.ErrNoSave) {
		return engine.Result{Message: "No saved game found."}, nil
	}
	if err != nil {
		return engine.Result{}, err
	}

	return a.runner.Do(func(s *engine.GameSession) engine.Result {
		s.Restore(snap)
		return engine.Result{OK: true, Message: "Game loaded."}
	}), nil
}

func (a *API) respond(w http.ResponseWriter, cmd Command, res engine.Result) {
	if !res.OK {
		a.logger.Debug(cmd.Type + " refused: " + res.Message)
	}
	a.jsonSuccess(w, ActionResponse{
		Success: res.OK,
		Message: res.Message,
		Outcome: res.Outcome,
		State:   a.runner.Status(),
	})
}

// jsonError sends an error response.
func (a *API) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// jsonSuccess sends a success response.
func (a *API) jsonSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(data)
}
