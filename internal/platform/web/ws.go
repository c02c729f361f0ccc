package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/session"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Message types spoken over the socket.
const (
	msgNew    = "new"
	msgMove   = "move"
	msgCommit = "commit"
	msgSpawn  = "spawn"
	msgPlay   = "play"
	msgState  = "state"
	msgError  = "error"
)

// clientMessage is what a browser sends.
type clientMessage struct {
	Type      string `json:"type"`
	Direction string `json:"direction,omitempty"`
	Preset    string `json:"preset,omitempty"`
	Seed      int64  `json:"seed,omitempty"`
}

// serverMessage is the reply to every client message.
type serverMessage struct {
	Type     string          `json:"type"`
	Snapshot *board.Snapshot `json:"snapshot,omitempty"`
	Turn     *session.Turn   `json:"turn,omitempty"`
	Moved    bool            `json:"moved"`
	GameOver bool            `json:"game_over"`
	Error    string          `json:"error,omitempty"`
}

// wsClient is one socket and the session it owns.
type wsClient struct {
	srv     *Server
	conn    *websocket.Conn
	send    chan serverMessage
	done    chan struct{} // Closed when the writer stops
	session *session.Session
}

func (s *Server) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if s.cfg.Origin == "" {
				return true
			}
			return r.Header.Get("Origin") == s.cfg.Origin
		},
	}
}

// handleWS upgrades the request and starts a session for the preset
// named in the query.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := t2048.LookupPreset(q.Get("preset"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_preset")
		return
	}
	seed, _ := strconv.ParseInt(q.Get("seed"), 10, 64)

	sess, err := session.New(p.WithConfig(t2048.CurrentConfig()), seed)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}

	up := s.upgrader()
	conn, err := up.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &wsClient{
		srv:     s,
		conn:    conn,
		send:    make(chan serverMessage, 16),
		done:    make(chan struct{}),
		session: sess,
	}
	s.logger.Info("websocket connected", "remote", r.RemoteAddr, "preset", p.Name)

	c.send <- c.stateMessage(msgState)
	go c.writePump()
	c.readPump()
}

// readPump handles client messages until the socket closes.
func (c *wsClient) readPump() {
	defer func() {
		close(c.send)
		c.conn.Close()
		c.srv.logger.Info("websocket closed", "moves", c.session.Moves())
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.srv.logger.Warn("websocket read", "error", err)
			}
			return
		}
		select {
		case c.send <- c.handle(msg):
		case <-c.done:
			return
		}
	}
}

// writePump sends replies and keeps the connection alive with pings.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(c.done)
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handle applies one client message to the session. The move, commit and
// spawn messages let a browser animate a turn between its two halves.
func (c *wsClient) handle(msg clientMessage) serverMessage {
	switch msg.Type {
	case msgNew:
		preset := c.session.Preset
		if msg.Preset != "" {
			p, err := t2048.LookupPreset(msg.Preset)
			if err != nil {
				return errorMessage(err.Error())
			}
			preset = p.WithConfig(t2048.CurrentConfig())
		}
		sess, err := session.New(preset, msg.Seed)
		if err != nil {
			return errorMessage(err.Error())
		}
		c.session = sess
		return c.stateMessage(msgState)

	case msgMove:
		dir, err := board.ParseDirection(msg.Direction)
		if err != nil {
			return errorMessage(err.Error())
		}
		snap, moved := c.session.Move(dir)
		return serverMessage{Type: msgMove, Snapshot: &snap, Moved: moved, GameOver: c.session.GameOver()}

	case msgCommit:
		snap := c.session.Commit()
		return serverMessage{Type: msgCommit, Snapshot: &snap, GameOver: c.session.GameOver()}

	case msgSpawn:
		snap := c.session.Spawn()
		c.recordIfOver()
		return serverMessage{Type: msgSpawn, Snapshot: &snap, GameOver: c.session.GameOver()}

	case msgPlay:
		dir, err := board.ParseDirection(msg.Direction)
		if err != nil {
			return errorMessage(err.Error())
		}
		turn := c.session.Play(dir)
		c.recordIfOver()
		return serverMessage{Type: msgPlay, Snapshot: &turn.Final, Turn: &turn, Moved: turn.Moved, GameOver: turn.GameOver}

	case msgState:
		return c.stateMessage(msgState)

	default:
		return errorMessage("unknown message type " + strconv.Quote(msg.Type))
	}
}

func (c *wsClient) stateMessage(typ string) serverMessage {
	snap := c.session.Snapshot()
	return serverMessage{Type: typ, Snapshot: &snap, GameOver: c.session.GameOver()}
}

func (c *wsClient) recordIfOver() {
	if c.session.GameOver() {
		c.srv.recordResult(c.session)
	}
}

func errorMessage(text string) serverMessage {
	return serverMessage{Type: msgError, Error: text}
}
