package site

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/craftburger/internal/logging"
	"github.com/ziadkadry99/craftburger/internal/session"
	"github.com/ziadkadry99/craftburger/internal/theme"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 8
)

// ThemeMessage is pushed to a visitor's open tabs when their theme changes.
type ThemeMessage struct {
	Type     string         `json:"type"`
	Theme    theme.Theme    `json:"theme"`
	Source   theme.Source   `json:"source"`
	Seq      uint64         `json:"seq"`
	Document theme.Document `json:"document"`
}

type hubConn struct {
	ws   *websocket.Conn
	tab  string
	send chan []byte
	once sync.Once
}

func (c *hubConn) close() {
	c.once.Do(func() { close(c.send) })
}

// ThemeHub fans theme changes out to every open tab of the same client.
type ThemeHub struct {
	mu       sync.Mutex
	clients  map[string]map[*hubConn]struct{}
	upgrader websocket.Upgrader
	logger   *logging.Logger
}

// NewThemeHub returns an empty hub.
func NewThemeHub(logger *logging.Logger) *ThemeHub {
	return &ThemeHub{
		clients: make(map[string]map[*hubConn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.With("component", "themehub"),
	}
}

// ServeWS upgrades a tab's connection. The tab query parameter identifies
// the tab so it does not receive echoes of its own toggles.
func (h *ThemeHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	clientID, ok := session.PeekClientID(r)
	if !ok {
		http.Error(w, "missing client cookie", http.StatusBadRequest)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error(err, "websocket upgrade")
		return
	}

	c := &hubConn{ws: ws, tab: r.URL.Query().Get("tab"), send: make(chan []byte, sendBuffer)}
	h.add(clientID, c)

	go h.writePump(c)
	h.readPump(clientID, c)
}

func (h *ThemeHub) add(clientID string, c *hubConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns, ok := h.clients[clientID]
	if !ok {
		conns = make(map[*hubConn]struct{})
		h.clients[clientID] = conns
	}
	conns[c] = struct{}{}
}

func (h *ThemeHub) remove(clientID string, c *hubConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[clientID]; ok {
		if _, ok := conns[c]; ok {
			delete(conns, c)
			c.close()
		}
		if len(conns) == 0 {
			delete(h.clients, clientID)
		}
	}
}

// readPump drains client frames so pongs and close frames are processed.
func (h *ThemeHub) readPump(clientID string, c *hubConn) {
	defer func() {
		h.remove(clientID, c)
		c.ws.Close()
	}()

	c.ws.SetReadLimit(512)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Error(err, "websocket read")
			}
			return
		}
	}
}

// writePump is the only writer of c.ws.
func (h *ThemeHub) writePump(c *hubConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Broadcast sends msg to every tab of clientID except exceptTab and
// returns how many tabs it was queued for. Tabs with a full buffer are
// skipped.
func (h *ThemeHub) Broadcast(clientID, exceptTab string, msg ThemeMessage) int {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error(err, "encoding theme message")
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	sent := 0
	for c := range h.clients[clientID] {
		if exceptTab != "" && c.tab == exceptTab {
			continue
		}
		select {
		case c.send <- data:
			sent++
		default:
			h.logger.Warn("theme push dropped, tab too slow")
		}
	}
	return sent
}

// Forward returns a store listener that pushes each change to the client's
// other tabs.
func (h *ThemeHub) Forward(clientID, originTab string) theme.Listener {
	return func(c theme.Change) {
		h.Broadcast(clientID, originTab, ThemeMessage{
			Type:     "themeChanged",
			Theme:    c.Theme,
			Source:   c.Source,
			Seq:      c.Seq,
			Document: theme.DocumentFor(c.Theme),
		})
	}
}

// Tabs returns how many tabs of clientID are connected.
func (h *ThemeHub) Tabs(clientID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[clientID])
}

// Close disconnects every tab.
func (h *ThemeHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conns := range h.clients {
		for c := range conns {
			c.close()
		}
		delete(h.clients, id)
	}
}
