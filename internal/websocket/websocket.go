// Package websocket is the thin transport driving the session core: client
// actions come in as JSON messages, state goes out as snapshots.
package websocket

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal"
	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/game"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans session broadcasts out to the connected clients of each room.
type Hub struct {
	registry *game.Registry

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub(registry *game.Registry) *Hub {
	return &Hub{
		registry: registry,
		rooms:    make(map[string]map[*Client]bool),
	}
}

// Client is one websocket connection bound to one player in one room.
type Client struct {
	conn     *websocket.Conn
	playerID string
	roomID   string
	isHost   bool

	writeMu sync.Mutex
}

func (c *Client) writeJSON(v any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

// HandleWebSocket upgrades the connection and attaches the caller to a room.
// The path segment "new" creates a room with the caller as host; any other
// value joins an existing one. Identity arrives resolved in query params.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HandleWebSocket] upgrade failed: %v", err)
		return
	}

	who := internal.Identity{
		ID:     r.URL.Query().Get("id"),
		Name:   r.URL.Query().Get("name"),
		Avatar: r.URL.Query().Get("avatar"),
		Gender: r.URL.Query().Get("gender"),
	}
	if who.Name == "" {
		who.Name = "Misafir"
	}
	if who.ID == "" {
		who.ID = uuid.NewString()
	}

	roomID := mux.Vars(r)["roomId"]
	var session *game.Session
	isHost := false

	if roomID == "new" {
		session = h.registry.Create(who)
		roomID = session.ID()
		isHost = true
		h.attachBroadcaster(roomID, session)
	} else {
		var ok bool
		session, ok = h.registry.Get(roomID)
		if !ok {
			_ = conn.WriteJSON(internal.Message[internal.ErrorData]{
				Type: "error",
				Data: internal.ErrorData{Action: "join", Message: "oda bulunamadı"},
			})
			conn.Close()
			return
		}
		if err := session.Join(who); err != nil {
			_ = conn.WriteJSON(internal.Message[internal.ErrorData]{
				Type: "error",
				Data: internal.ErrorData{Action: "join", Message: err.Error()},
			})
			conn.Close()
			return
		}
	}

	client := &Client{conn: conn, playerID: who.ID, roomID: roomID, isHost: isHost}
	h.addClient(client)

	// First frame is always a full snapshot.
	if err := client.writeJSON(internal.Message[any]{Type: "snapshot", Data: session.Snapshot()}); err != nil {
		log.Printf("[HandleWebSocket] room=%s: initial snapshot: %v", roomID, err)
	}

	go h.readLoop(client, session)
}

func (h *Hub) attachBroadcaster(roomID string, session *game.Session) {
	session.SetBroadcaster(func(msg internal.Message[any]) {
		h.broadcast(roomID, msg)
	})
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.rooms[c.roomID]
	if !ok {
		clients = make(map[*Client]bool)
		h.rooms[c.roomID] = clients
	}
	clients[c] = true
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.rooms[c.roomID]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, c.roomID)
		}
	}
}

// broadcast snapshots the client set and writes outside the hub lock.
func (h *Hub) broadcast(roomID string, msg internal.Message[any]) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[roomID]))
	for c := range h.rooms[roomID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.writeJSON(msg); err != nil {
			log.Printf("[broadcast] room=%s: write to %s failed: %v", roomID, c.playerID, err)
		}
	}
}

// Action is the inbound message payload. Fields are used per action type.
type Action struct {
	CardID   int                    `json:"card_id,omitempty"`
	PlayerID string                 `json:"player_id,omitempty"`
	Success  bool                   `json:"success"`
	Stage    internal.FinalStage    `json:"stage,omitempty"`
	Draft    internal.SettingsDraft `json:"draft,omitempty"`
}

func (h *Hub) readLoop(c *Client, session *game.Session) {
	defer func() {
		c.conn.Close()
		h.removeClient(c)
		session.Leave(c.playerID)
		if c.isHost {
			// The host leaving aborts the session, so the room itself is
			// dead; drop it from the registry.
			h.registry.Remove(c.roomID)
		}
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			log.Printf("[readLoop] room=%s player=%s: %v", c.roomID, c.playerID, err)
			return
		}

		var msg internal.Message[Action]
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("[readLoop] room=%s: bad message: %v", c.roomID, err)
			continue
		}

		if err := h.dispatch(c, session, msg.Type, msg.Data); err != nil {
			if writeErr := c.writeJSON(internal.Message[internal.ErrorData]{
				Type: "error",
				Data: internal.ErrorData{Action: msg.Type, Message: err.Error()},
			}); writeErr != nil {
				log.Printf("[readLoop] room=%s: error reply failed: %v", c.roomID, writeErr)
			}
		}
	}
}

var errHostOnly = errors.New("yalnızca yönetici yapabilir")

// dispatch routes one action into the session. Privileged actions require
// the host connection.
func (h *Hub) dispatch(c *Client, s *game.Session, action string, a Action) error {
	switch action {
	case "toggle_mute":
		return s.ToggleMute(c.playerID)
	case "leave":
		s.Leave(c.playerID)
		return nil
	}

	if !c.isHost {
		return errHostOnly
	}

	switch action {
	case "start_game":
		return s.StartGame()
	case "draw_card":
		return s.DrawCard(a.CardID)
	case "judge":
		return s.Judge(a.Success)
	case "abandon_turn":
		return s.AbandonTurn()
	case "advance_round":
		return s.AdvanceRound()
	case "confirm_advance":
		return s.ConfirmAdvance()
	case "trigger_stage":
		return s.TriggerStage(a.Stage)
	case "set_on_stage":
		return s.SetPlayerOnStage(a.PlayerID)
	case "judge_final":
		return s.JudgeFinal(a.PlayerID, a.Success)
	case "finalize":
		return s.Finalize()
	case "declare_winner":
		return s.DeclareWinner(a.PlayerID)
	case "restart":
		s.Restart()
		return nil
	case "abort":
		s.Abort()
		h.registry.Remove(c.roomID)
		return nil
	case "kick":
		return s.Kick(a.PlayerID)
	case "settings":
		return s.UpdateSettings(a.Draft)
	case "publish":
		s.Publish()
		return nil
	case "mute_all":
		s.MuteAll()
		return nil
	case "toggle_spy":
		return s.ToggleSpy(a.PlayerID)
	case "spy_mission":
		s.GenerateSpyMission()
		return nil
	default:
		log.Printf("[dispatch] room=%s: unknown action %q", c.roomID, action)
		return nil
	}
}
