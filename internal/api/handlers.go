// internal/api/handlers.go
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"go-lane-war/internal/app"
	"go-lane-war/internal/types"
)

// Command is the player-command DTO. All commands act on the player side;
// the opponent side is driven only by its controller.
type Command struct {
	Action string `json:"action"`
	UnitID string `json:"unit_id,omitempty"`
	Index  int    `json:"index,omitempty"`
}

// applyCommand routes one command into the game's mutating API. A false
// return means the command was rejected by an affordability or capacity
// check, not that anything went wrong.
func applyCommand(g *app.Game, cmd Command) bool {
	switch cmd.Action {
	case "spawn_unit":
		return g.SpawnUnit(types.PlayerSide, cmd.UnitID)
	case "cancel_queued":
		return g.CancelQueued(types.PlayerSide, cmd.Index)
	case "upgrade_age":
		return g.UpgradeAge(types.PlayerSide)
	case "upgrade_mana":
		return g.UpgradeMana(types.PlayerSide)
	case "upgrade_turret":
		return g.UpgradeTurret(types.PlayerSide)
	case "heal_base":
		return g.HealBase(types.PlayerSide)
	}
	return false
}

// Server bundles the HTTP surface: REST endpoints plus the WebSocket
// upgrade path.
type Server struct {
	game   *app.Game
	hub    *Hub
	logger *slog.Logger
}

func NewServer(game *app.Game, hub *Hub, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{game: game, hub: hub, logger: logger}
}

// Routes registers all endpoints on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /api/catalog/units", s.handleUnitCatalog)
	mux.HandleFunc("GET /api/catalog/turrets", s.handleTurretCatalog)
	mux.HandleFunc("GET /api/ai/debug", s.handleAIDebug)
	mux.HandleFunc("GET /api/save", s.handleSave)
	mux.HandleFunc("POST /api/command", s.handleCommand)
	mux.HandleFunc("/ws", s.hub.ServeWs)
	return mux
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.game.Snapshot())
}

func (s *Server) handleUnitCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, app.UnitCatalog())
}

func (s *Server) handleTurretCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.game.TurretCatalog())
}

// handleAIDebug exposes the opponent controller's diagnostic surface. Purely
// observational; it can never influence the simulation.
func (s *Server) handleAIDebug(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.game.AIDebug())
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	blob, err := s.game.Save()
	if err != nil {
		s.logger.Error("serialize game", "error", err)
		http.Error(w, "failed to serialize game", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(blob)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "invalid command payload", http.StatusBadRequest)
		return
	}
	accepted := applyCommand(s.game, cmd)
	w.Header().Set("Content-Type", "application/json")
	if !accepted {
		// Rejection is a legal outcome, distinguish it from transport errors.
		w.WriteHeader(http.StatusConflict)
	}
	json.NewEncoder(w).Encode(map[string]any{"action": cmd.Action, "accepted": accepted})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
