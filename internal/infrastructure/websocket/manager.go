package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"creacakes/pkg/logger"
)

// Frame is one outbound thread message together with its sequence number.
// The seq lets a client that just replayed its backlog drop queued live
// frames it has already written.
type Frame struct {
	Seq  int64
	Data []byte
}

// Client is one WebSocket connection subscribed to a quote thread.
type Client struct {
	UserID  string
	QuoteID string
	Conn    *websocket.Conn
	Send    chan Frame

	// Highest seq written during backlog replay. Set before WritePump
	// starts, never mutated afterwards.
	replayedTo int64
}

type broadcast struct {
	quoteID string
	frame   Frame
}

// Manager keeps the set of open connections grouped by quote thread, so a
// message appended to a thread can be pushed to everyone watching it.
// Registration, removal and broadcasting all run on the manager loop; the
// loop is the only goroutine that sends on or closes a client's channel.
type Manager struct {
	rooms      map[string]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	broadcasts chan broadcast
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcasts: make(chan broadcast, 256),
	}
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if m.rooms[client.QuoteID] == nil {
					m.rooms[client.QuoteID] = make(map[*Client]bool)
				}
				m.rooms[client.QuoteID][client] = true
				m.mutex.Unlock()
				logger.Debug("Client %s joined thread %s", client.UserID, client.QuoteID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				m.drop(client)
				m.mutex.Unlock()
				logger.Debug("Client %s left thread %s", client.UserID, client.QuoteID)

			case b := <-m.broadcasts:
				m.mutex.Lock()
				for client := range m.rooms[b.quoteID] {
					select {
					case client.Send <- b.frame:
					default:
						// Slow consumer; drop the connection rather
						// than block the whole room.
						m.drop(client)
					}
				}
				m.mutex.Unlock()

			case <-ctx.Done():
				return
			}
		}
	}()
}

// drop removes a client and closes its channel. Caller holds the lock.
func (m *Manager) drop(client *Client) {
	room, ok := m.rooms[client.QuoteID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}
	delete(room, client)
	close(client.Send)
	if len(room) == 0 {
		delete(m.rooms, client.QuoteID)
	}
}

// SendToThread queues a message for every connection watching the quote.
// It never blocks the caller; if the broadcast queue is full the frame is
// dropped and clients catch up from the backlog on reconnect.
func (m *Manager) SendToThread(quoteID string, seq int64, message []byte) {
	select {
	case m.broadcasts <- broadcast{quoteID: quoteID, frame: Frame{Seq: seq, Data: message}}:
	default:
		logger.Warn("Broadcast queue full, dropping message %d for thread %s", seq, quoteID)
	}
}

// ThreadClientCount reports how many connections are watching a quote.
func (m *Manager) ThreadClientCount(quoteID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms[quoteID])
}

// Replay writes backlog frames straight to the connection, bypassing the
// Send channel, and records the highest replayed seq. It must run after the
// client is registered and before WritePump starts: live frames queued
// while it runs are held in Send, and WritePump later skips any at or below
// the replay watermark, so nothing is lost or duplicated whatever the
// backlog size.
func (c *Client) Replay(frames []Frame) error {
	for _, frame := range frames {
		if err := c.Conn.WriteMessage(websocket.TextMessage, frame.Data); err != nil {
			return err
		}
		if frame.Seq > c.replayedTo {
			c.replayedTo = frame.Seq
		}
	}
	return nil
}

// ReadPump drains the connection until it closes. Inbound frames are ignored;
// messages are posted over the REST API and fan out through SendToThread.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read error: %v", err)
			}
			break
		}
	}
}

// WritePump sends queued frames to the WebSocket connection, skipping any
// already delivered by the backlog replay.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		frame, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if frame.Seq > 0 && frame.Seq <= c.replayedTo {
			continue
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, frame.Data); err != nil {
			logger.Warn("websocket write error: %v", err)
			return
		}
	}
}
