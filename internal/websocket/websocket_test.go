package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal"
	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/game"
	"github.com/ramcoferoyt-glitch/Dil-Avc-lar-oyunu/internal/gen"
)

// frame is the decoded half of a Message before its payload type is known.
type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	g := gen.Func(func(ctx context.Context, kind gen.Kind, p gen.Params) (string, error) {
		return "Kendini tanıt", nil
	})
	var listing game.RoomListing
	hub := NewHub(game.NewRegistry(g, listing))

	r := mux.NewRouter()
	r.HandleFunc("/ws/{roomId}", hub.HandleWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", path, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	// The round-1 transition banner holds broadcasts for a few seconds, so
	// the per-frame deadline must outlast it.
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var f frame
	if err := conn.ReadJSON(&f); err != nil {
		t.Fatalf("reading frame: %v", err)
	}
	return f
}

// readSnapshotUntil skips unrelated frames until a snapshot matching cond
// arrives.
func readSnapshotUntil(t *testing.T, conn *websocket.Conn, desc string, cond func(internal.SessionSnapshot) bool) internal.SessionSnapshot {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		f := readFrame(t, conn)
		if f.Type != "snapshot" {
			continue
		}
		var snap internal.SessionSnapshot
		if err := json.Unmarshal(f.Data, &snap); err != nil {
			t.Fatalf("decoding snapshot: %v", err)
		}
		if cond(snap) {
			return snap
		}
	}
	t.Fatalf("no snapshot matched: %s", desc)
	return internal.SessionSnapshot{}
}

func send(t *testing.T, conn *websocket.Conn, action string, a Action) {
	t.Helper()
	if err := conn.WriteJSON(internal.Message[Action]{Type: action, Data: a}); err != nil {
		t.Fatalf("sending %s: %v", action, err)
	}
}

func TestCreateRoomAndJoin(t *testing.T) {
	_, srv := newTestHub(t)

	host := dial(t, srv, "/ws/new?id=host&name=Ev+Sahibi")
	f := readFrame(t, host)
	if f.Type != "snapshot" {
		t.Fatalf("first frame type = %q, want snapshot", f.Type)
	}
	var snap internal.SessionSnapshot
	if err := json.Unmarshal(f.Data, &snap); err != nil {
		t.Fatal(err)
	}
	if snap.State != internal.StateSocial || snap.RoomID == "" {
		t.Fatalf("lobby snapshot wrong: state=%s room=%q", snap.State, snap.RoomID)
	}

	guest := dial(t, srv, "/ws/"+snap.RoomID+"?id=a&name=Ay%C5%9Fe&gender=Kad%C4%B1n")
	gf := readFrame(t, guest)
	if gf.Type != "snapshot" {
		t.Fatalf("guest first frame type = %q", gf.Type)
	}
	var gsnap internal.SessionSnapshot
	if err := json.Unmarshal(gf.Data, &gsnap); err != nil {
		t.Fatal(err)
	}
	if len(gsnap.Players) != 2 {
		t.Fatalf("guest sees %d players, want 2", len(gsnap.Players))
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	_, srv := newTestHub(t)

	conn := dial(t, srv, "/ws/RM-0000?id=a&name=Ayse")
	f := readFrame(t, conn)
	if f.Type != "error" {
		t.Fatalf("frame type = %q, want error", f.Type)
	}
	var e internal.ErrorData
	if err := json.Unmarshal(f.Data, &e); err != nil {
		t.Fatal(err)
	}
	if e.Action != "join" || e.Message == "" {
		t.Errorf("error payload = %+v", e)
	}
}

func TestHostStartsGame(t *testing.T) {
	_, srv := newTestHub(t)

	host := dial(t, srv, "/ws/new?id=host&name=Ev+Sahibi")
	snap := readSnapshotUntil(t, host, "lobby", func(sn internal.SessionSnapshot) bool {
		return sn.State == internal.StateSocial
	})

	guest := dial(t, srv, "/ws/"+snap.RoomID+"?id=a&name=Ayse")
	readFrame(t, guest)

	send(t, host, "start_game", Action{})
	snap = readSnapshotUntil(t, host, "ROUND_1", func(sn internal.SessionSnapshot) bool {
		return sn.State == internal.StateRound1
	})
	if len(snap.Cards) != internal.DeckSize {
		t.Errorf("deck size = %d", len(snap.Cards))
	}
	// The guest connection receives the same broadcasts.
	readSnapshotUntil(t, guest, "guest ROUND_1", func(sn internal.SessionSnapshot) bool {
		return sn.State == internal.StateRound1
	})
}

func TestGuestCannotRunHostActions(t *testing.T) {
	_, srv := newTestHub(t)

	host := dial(t, srv, "/ws/new?id=host&name=Ev+Sahibi")
	snap := readSnapshotUntil(t, host, "lobby", func(sn internal.SessionSnapshot) bool {
		return sn.State == internal.StateSocial
	})

	guest := dial(t, srv, "/ws/"+snap.RoomID+"?id=a&name=Ayse")
	readFrame(t, guest)

	send(t, guest, "start_game", Action{})
	deadline := time.Now().Add(2 * time.Second)
	for {
		if time.Now().After(deadline) {
			t.Fatal("no error frame for guest host-action")
		}
		f := readFrame(t, guest)
		if f.Type != "error" {
			continue
		}
		var e internal.ErrorData
		if err := json.Unmarshal(f.Data, &e); err != nil {
			t.Fatal(err)
		}
		if e.Action != "start_game" || e.Message != errHostOnly.Error() {
			t.Errorf("error payload = %+v", e)
		}
		break
	}

	// Guests may still drive their own mute.
	send(t, guest, "toggle_mute", Action{})
	readSnapshotUntil(t, guest, "unmuted guest", func(sn internal.SessionSnapshot) bool {
		for _, p := range sn.Players {
			if p.ID == "a" && !p.IsMuted {
				return true
			}
		}
		return false
	})
}

func TestHostDisconnectRemovesRoom(t *testing.T) {
	hub, srv := newTestHub(t)

	host := dial(t, srv, "/ws/new?id=host&name=Ev+Sahibi")
	snap := readSnapshotUntil(t, host, "lobby", func(sn internal.SessionSnapshot) bool {
		return sn.State == internal.StateSocial
	})
	guest := dial(t, srv, "/ws/"+snap.RoomID+"?id=a&name=Ayse")
	readFrame(t, guest)
	if got := hub.registry.Count(); got != 1 {
		t.Fatalf("registry holds %d sessions, want 1", got)
	}

	// A guest dropping keeps the room alive.
	guest.Close()
	time.Sleep(100 * time.Millisecond)
	if got := hub.registry.Count(); got != 1 {
		t.Fatalf("registry holds %d sessions after guest disconnect, want 1", got)
	}

	// The host dropping aborts the session and unregisters the room.
	host.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.registry.Count() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := hub.registry.Count(); got != 0 {
		t.Fatalf("registry holds %d sessions after host disconnect, want 0", got)
	}
}

func TestHostActionErrorsAreReplied(t *testing.T) {
	_, srv := newTestHub(t)

	host := dial(t, srv, "/ws/new?id=host&name=Ev+Sahibi")
	readFrame(t, host)

	// Drawing in the lobby is a state error and must come back as a frame.
	send(t, host, "draw_card", Action{CardID: 1})
	f := readFrame(t, host)
	if f.Type != "error" {
		t.Fatalf("frame type = %q, want error", f.Type)
	}
	var e internal.ErrorData
	if err := json.Unmarshal(f.Data, &e); err != nil {
		t.Fatal(err)
	}
	if e.Action != "draw_card" {
		t.Errorf("error action = %q", e.Action)
	}
}
