package services

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/breevs/roulette-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// feedClient is one connected spectator.
type feedClient struct {
	gameID uint
	conn   *websocket.Conn
	send   chan []byte
	once   sync.Once
}

func (c *feedClient) close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

func (c *feedClient) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("[Feed] write error for game %d: %v", c.gameID, err)
			return
		}
	}
}

// Feed broadcasts fresh commentary to websocket spectators per game.
// A nil feed is valid and drops broadcasts.
type Feed struct {
	mu      sync.Mutex
	clients map[uint]map[*feedClient]bool
}

func NewFeed() *Feed {
	return &Feed{clients: make(map[uint]map[*feedClient]bool)}
}

// HandleWebSocket upgrades GET /ws/feed/:game_id and registers the spectator.
func (f *Feed) HandleWebSocket(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[Feed] upgrade error: %v", err)
		return
	}

	client := &feedClient{
		gameID: uint(gameID),
		conn:   conn,
		send:   make(chan []byte, 32),
	}
	f.register(client)
	logger.Infof("[Feed] New spectator for game %d", gameID)

	go client.writePump()
	go f.readPump(client)
}

// readPump drains inbound frames until the peer goes away, then unregisters.
func (f *Feed) readPump(client *feedClient) {
	defer f.unregister(client)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[Feed] spectator for game %d disconnected", client.gameID)
			}
			return
		}
	}
}

func (f *Feed) register(client *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clients[client.gameID] == nil {
		f.clients[client.gameID] = make(map[*feedClient]bool)
	}
	f.clients[client.gameID][client] = true
}

func (f *Feed) unregister(client *feedClient) {
	f.mu.Lock()
	if f.clients[client.gameID] != nil {
		delete(f.clients[client.gameID], client)
	}
	f.mu.Unlock()
	client.close()
}

// Broadcast sends v to every spectator of the game. Slow clients with a full
// send buffer are skipped rather than blocking commentary generation.
func (f *Feed) Broadcast(gameID uint, v any) {
	if f == nil {
		return
	}
	msg, err := json.Marshal(v)
	if err != nil {
		logger.Errorf("[Feed] marshal error: %v", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients[gameID] {
		select {
		case client.send <- msg:
		default:
		}
	}
}
