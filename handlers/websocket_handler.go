package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/Dosada05/cs2-arena/brackets"
	"github.com/Dosada05/cs2-arena/services"
)

type WebSocketHandler struct {
	hub            *brackets.Hub
	matchService   services.MatchService
	bracketService services.BracketService
	upgrader       websocket.Upgrader
	logger         *slog.Logger
}

// NewWebSocketHandler принимает список разрешенных Origin; "*" разрешает все.
func NewWebSocketHandler(hub *brackets.Hub, ms services.MatchService, bs services.BracketService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		matchService:   ms,
		bracketService: bs,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// ServeGroup подписывает клиента на изменения таблицы группы.
// Клиент подключается к /ws/groups/{group} и сразу получает текущую таблицу.
func (h *WebSocketHandler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")
	if group == "" {
		http.Error(w, "Missing group", http.StatusBadRequest)
		return
	}

	var snapshot interface{}
	if standings, err := h.matchService.GetStandings(r.Context(), group); err == nil {
		snapshot = services.GroupStandings{GroupName: group, Standings: standings}
	}
	h.serve(w, r, brackets.GroupRoom(group), brackets.MessageStandingsUpdated, snapshot)
}

// ServeStage подписывает клиента на изменения сетки стадии: /ws/brackets/{stage}.
func (h *WebSocketHandler) ServeStage(w http.ResponseWriter, r *http.Request) {
	stage := chi.URLParam(r, "stage")
	if stage == "" {
		http.Error(w, "Missing stage", http.StatusBadRequest)
		return
	}

	var snapshot interface{}
	if view, err := h.bracketService.GetStage(r.Context(), stage); err == nil {
		snapshot = view
	}
	h.serve(w, r, brackets.StageRoom(stage), brackets.MessageBracketUpdated, snapshot)
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, room, msgType string, snapshot interface{}) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP ошибку клиенту
		h.logger.Warn("failed to upgrade websocket connection", slog.String("room", room), slog.Any("error", err))
		return
	}

	client := brackets.NewClient(h.hub, conn, room)
	if snapshot != nil {
		msg, err := json.Marshal(brackets.WebSocketMessage{Type: msgType, Payload: snapshot, RoomID: room})
		if err == nil {
			client.Send <- msg
		}
	}
	if !h.hub.Join(client) {
		h.logger.Warn("websocket hub is stopped, dropping client", slog.String("room", room))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()

	h.logger.Debug("websocket client connected", slog.String("room", room), slog.String("client_id", client.ID))
}
